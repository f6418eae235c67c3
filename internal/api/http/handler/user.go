package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

// UserService defines business operations for users.
type UserService interface {
	Create(ctx context.Context, params model.CreateUserParams) (model.User, error)
	Get(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, params model.UpdateUserParams) (model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// User handles HTTP endpoints for users.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// Create handles POST /users.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("User handler: invalid create request", "error", err.Error())
		handleError(w, err)
		return
	}

	params, err := req.params()
	if err != nil {
		handleError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), params)
	if err != nil {
		h.logFailure("create user failed", "", err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

// List handles GET /users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.logFailure("list users failed", "", err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponses(users))
}

// Get handles GET /users/{id}.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		h.logFailure("get user failed", id, err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Update handles PUT /users/{id}.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("User handler: invalid update request", "user_id", id, "error", err.Error())
		handleError(w, err)
		return
	}

	params, err := req.params()
	if err != nil {
		handleError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, params)
	if err != nil {
		h.logFailure("update user failed", id, err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Delete handles DELETE /users/{id}.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		h.logFailure("delete user failed", id, err)
		handleError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// logFailure logs server-side failures at error level and client errors at
// debug level.
func (h *User) logFailure(msg, id string, err error) {
	status, _ := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("User handler: "+msg, "user_id", id, "error", err.Error())
		return
	}
	h.logger.Debug("User handler: "+msg, "user_id", id, "error", err.Error())
}
