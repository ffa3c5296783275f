package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-cms-api/internal/application/auth"
	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/id"
	"github.com/go-cms-api/internal/transport/http/middleware"
)

// AuthHandler exposes password login, token refresh, the Google consent flow
// and the existence probe.
type AuthHandler struct {
	svc        auth.Service
	refreshTTL time.Duration
}

func NewAuthHandler(svc auth.Service, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, refreshTTL: refreshTTL}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pair, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if pair.RefreshToken != "" {
		setRefreshCookie(w, pair.RefreshToken, h.refreshTTL)
	}
	writeJSON(w, http.StatusOK, pair)
}

// Refresh reads the renewal credential from the path-scoped cookie, falling
// back to the request body for non-browser clients.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(refreshCookieName); err == nil {
		token = c.Value
	}
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		token = body.RefreshToken
	}
	pair, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		httpError(w, err)
		return
	}
	setRefreshCookie(w, pair.RefreshToken, h.refreshTTL)
	writeJSON(w, http.StatusOK, pair)
}

type existenceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Exists  bool   `json:"exists"`
}

// UserExistence probes for an identity and rejects the combinations that make
// the requested flow impossible: login without an account, register with one.
func (h *AuthHandler) UserExistence(w http.ResponseWriter, r *http.Request) {
	var req auth.ExistenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exists, err := h.svc.UserExists(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	switch {
	case req.Type == domain.PurposeLogin && !exists:
		writeJSON(w, http.StatusUnprocessableEntity, existenceResponse{Message: "no account for this identifier"})
	case req.Type == domain.PurposeRegister && exists:
		writeJSON(w, http.StatusUnprocessableEntity, existenceResponse{Message: "account already exists", Exists: true})
	default:
		writeJSON(w, http.StatusOK, existenceResponse{Success: true, Exists: exists})
	}
}

// GoogleRedirect sends the browser to the Google consent screen. A random
// state value rides along in a short-lived cookie for the callback check.
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	state := id.New()
	url := h.svc.GoogleAuthURL(state)
	if url == "" {
		writeError(w, http.StatusServiceUnavailable, "google sign-in not configured")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/v1/auth/google",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}
	pair, err := h.svc.GoogleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		httpError(w, err)
		return
	}
	setRefreshCookie(w, pair.RefreshToken, h.refreshTTL)
	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.ChangePassword(r.Context(), claims.UserID, req); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "password changed", nil)
}
