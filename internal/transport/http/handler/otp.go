package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-cms-api/internal/application/otp"
)

// OtpHandler exposes one-time-code issuance and verification.
type OtpHandler struct {
	svc        otp.Service
	refreshTTL time.Duration
}

func NewOtpHandler(svc otp.Service, refreshTTL time.Duration) *OtpHandler {
	return &OtpHandler{svc: svc, refreshTTL: refreshTTL}
}

type sendCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TTL     int    `json:"ttl"`
	Code    string `json:"code,omitempty"`
}

func (h *OtpHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req otp.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.RequestCode(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendCodeResponse{
		Success: true,
		Message: "code sent",
		TTL:     result.TTL,
		Code:    result.Code,
	})
}

func (h *OtpHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req otp.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if !result.NewUser {
		setRefreshCookie(w, result.RefreshToken, h.refreshTTL)
	}
	writeJSON(w, http.StatusOK, result)
}
