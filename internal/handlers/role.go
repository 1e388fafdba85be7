package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pius706975/poolseek-be/internal/services"
)

// RoleHandler provides role CRUD endpoints.
type RoleHandler struct {
	roles *services.RoleService
}

func NewRoleHandler(roles *services.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// RoleRouter registers role routes on the given router.
func RoleRouter(r chi.Router, roles *services.RoleService) {
	handler := NewRoleHandler(roles)

	r.Post("/create", handler.Create)
	r.Get("/", handler.List)
	r.Get("/{id}", handler.GetByID)
	r.Delete("/delete/{id}", handler.Delete)
}

type CreateRoleRequest struct {
	RoleName string `json:"role_name"`
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	role, err := h.roles.Create(r.Context(), req.RoleName)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Successfully created role", role)
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Roles fetched", roles)
}

func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	role, err := h.roles.GetByID(r.Context(), id)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Role fetched", role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	if err := h.roles.Delete(r.Context(), id); err != nil {
		renderError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Successfully deleted role")
}
