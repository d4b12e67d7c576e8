package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/auth"
)

// Handler handles HTTP requests for tasks. All routes registered here sit
// behind the auth middleware; the owner for every operation is the identity
// it attached to the request context.
type Handler struct {
	service Service
}

// NewHandler creates a new Handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the task API routes with a chi.Router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.list)
	router.Post("/create", h.create)
	router.Get("/filter/{status}", h.filterByStatus)
	router.Get("/{id}", h.get)
	router.Put("/update/{id}", h.update)
	router.Delete("/delete/{id}", h.delete)
}

// owner resolves the authenticated user id from the request context.
func owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		apperror.WriteError(w, r, apperror.NewAuthError("Token is not present", nil))
		return uuid.Nil, false
	}
	return user.ID, true
}

// taskID parses the path id. A malformed id cannot reference any task, so it
// reports NotFound rather than a validation failure.
func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apperror.WriteError(w, r, apperror.NewNotFoundError("Task not found", nil))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	q := ListQuery{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
		Sort:     r.URL.Query().Get("sort"),
	}

	tasks, err := h.service.List(r.Context(), ownerID, q)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusOK, TaskResponse{Success: true, Task: task})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusCreated, TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Task:    task,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Update(r.Context(), ownerID, id, req)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusOK, TaskResponse{
		Success: true,
		Message: "Task updated successfully",
		Task:    task,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *Handler) filterByStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.FilterByStatus(r.Context(), ownerID, chi.URLParam(r, "status"))
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	apperror.WriteJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
		Message: "Tasks filtered successfully",
	})
}
