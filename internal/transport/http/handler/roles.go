package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-cms-api/internal/application/role"
	"github.com/go-cms-api/internal/domain"
)

// RoleHandler covers role and permission administration.
type RoleHandler struct {
	svc role.Service
}

func NewRoleHandler(svc role.Service) *RoleHandler { return &RoleHandler{svc: svc} }

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.ListRoles(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", roles)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	rl, err := h.svc.GetRole(r.Context(), chi.URLParam(r, "roleID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", rl)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.RoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rl, err := h.svc.CreateRole(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "role created", rl)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.RoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rl, err := h.svc.UpdateRole(r.Context(), chi.URLParam(r, "roleID"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "role updated", rl)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRole(r.Context(), chi.URLParam(r, "roleID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "role deleted", nil)
}

// --- permissions ---

func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.svc.ListPermissions(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", perms)
}

func (h *RoleHandler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var input domain.PermissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.CreatePermission(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "permission created", p)
}

func (h *RoleHandler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePermission(r.Context(), chi.URLParam(r, "permissionID")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "permission deleted", nil)
}
