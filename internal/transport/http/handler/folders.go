package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-cms-api/internal/application/media"
	"github.com/go-cms-api/internal/domain"
)

type FolderHandler struct {
	svc media.Service
}

func NewFolderHandler(svc media.Service) *FolderHandler {
	return &FolderHandler{svc: svc}
}

// Tree returns the full folder hierarchy with the files inside each folder.
func (h *FolderHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.FolderTree(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", tree)
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.FolderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f, err := h.svc.CreateFolder(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "folder created", f)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f, err := h.svc.UpdateFolder(r.Context(), chi.URLParam(r, "folderID"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "folder updated", f)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFolder(r.Context(), chi.URLParam(r, "folderID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "folder deleted", nil)
}
