package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-cms-api/internal/application/language"
	"github.com/go-cms-api/internal/domain"
)

type LanguageHandler struct {
	svc language.Service
}

func NewLanguageHandler(svc language.Service) *LanguageHandler {
	return &LanguageHandler{svc: svc}
}

func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	languages, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", languages)
}

func (h *LanguageHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "languageID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", l)
}

func (h *LanguageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.LanguageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.Create(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "language created", l)
}

func (h *LanguageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "languageID"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "language updated", l)
}

func (h *LanguageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "languageID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "language deleted", nil)
}
