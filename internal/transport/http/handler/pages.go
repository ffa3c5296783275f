package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-cms-api/internal/application/page"
	"github.com/go-cms-api/internal/domain"
)

// PageHandler covers pages, their sections and the translated contents,
// plus the public read-only tree.
type PageHandler struct {
	svc         page.Service
	defaultLang string
}

func NewPageHandler(svc page.Service, defaultLang string) *PageHandler {
	return &PageHandler{svc: svc, defaultLang: defaultLang}
}

// --- public ---

func (h *PageHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.ListPages(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", pages)
}

// PublicGetByKey renders the full page tree for one key. Contents come back
// filtered to the requested language, defaulting to the site language.
func (h *PageHandler) PublicGetByKey(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = h.defaultLang
	}
	p, err := h.svc.GetPageByKey(r.Context(), chi.URLParam(r, "key"), lang)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

// --- pages ---

func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.ListPages(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", pages)
}

func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPage(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.PageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.CreatePage(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "page created", p)
}

func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.PageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.UpdatePage(r.Context(), chi.URLParam(r, "pageID"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "page updated", p)
}

func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePage(r.Context(), chi.URLParam(r, "pageID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "page deleted", nil)
}

// --- sections ---

func (h *PageHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.ListSections(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", sections)
}

func (h *PageHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var input domain.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sec, err := h.svc.CreateSection(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "section created", sec)
}

func (h *PageHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var input domain.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sec, err := h.svc.UpdateSection(r.Context(), chi.URLParam(r, "sectionID"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "section updated", sec)
}

func (h *PageHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSection(r.Context(), chi.URLParam(r, "sectionID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "section deleted", nil)
}

// --- contents ---

func (h *PageHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	contents, err := h.svc.ListContents(r.Context(), chi.URLParam(r, "sectionID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", contents)
}

func (h *PageHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var input domain.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.CreateContent(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "content created", c)
}

func (h *PageHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.UpdateContent(r.Context(), chi.URLParam(r, "contentID"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "content updated", c)
}

func (h *PageHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteContent(r.Context(), chi.URLParam(r, "contentID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "content deleted", nil)
}
