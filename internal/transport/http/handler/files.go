package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-cms-api/internal/application/media"
	"github.com/go-cms-api/internal/transport/http/middleware"
)

// FileHandler handles S3-backed media endpoints.
type FileHandler struct {
	svc media.Service
}

func NewFileHandler(svc media.Service) *FileHandler { return &FileHandler{svc: svc} }

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	input := media.UploadInput{
		Reader:      f,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UploaderID:  claims.UserID,
	}
	if v := r.FormValue("folder"); v != "" {
		input.Folder = &v
	}
	if v := r.FormValue("category"); v != "" {
		input.Category = &v
	}
	uploaded, err := h.svc.Upload(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "file uploaded", uploaded)
}

func (h *FileHandler) UploadBase64(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		FileName string  `json:"file_name"`
		Base64   string  `json:"base64"`
		Folder   *string `json:"folder,omitempty"`
		Category *string `json:"category,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	uploaded, err := h.svc.UploadBase64(r.Context(), body.FileName, body.Base64, body.Folder, body.Category, claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "file uploaded", uploaded)
}

// List returns file rows, optionally narrowed by ?folder= and ?category=.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ListFiles(r.Context(), r.URL.Query().Get("folder"), r.URL.Query().Get("category"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", files)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	rc, f, err := h.svc.Download(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer rc.Close()
	contentType := f.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	_, _ = io.Copy(w, rc)
}

// URL hands out a short-lived presigned link instead of proxying the bytes.
func (h *FileHandler) URL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.FileURL(r.Context(), chi.URLParam(r, "fileID"), 15*time.Minute)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]string{"url": url})
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFile(r.Context(), chi.URLParam(r, "fileID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "file deleted", nil)
}
