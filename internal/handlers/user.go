package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/job-tracker/apiserver/internal/services"
	"github.com/job-tracker/apiserver/internal/store"
	"github.com/job-tracker/apiserver/types"
)

const (
	msgUsernameTaken     = "This username is already taken."
	msgEmailTaken        = "This email is already taken."
	msgPasswordUnchanged = "The password must be different than the old one."
)

// UserHandler provides HTTP handlers for user accounts.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService) {
	handler := NewUserHandler(userService)

	r.Post("/create", handler.CreateUser)
	r.Get("/{userID}", handler.GetUser)
	r.Put("/update/{userID}", handler.UpdateUser)
	r.Delete("/delete/{userID}", handler.DeleteUser)
}

// CreateUser creates a new user account from form or query parameters.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if username == "" || email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Create(r.Context(), username, email, password)
	if err != nil {
		if status, msg, ok := businessError(err); ok {
			writeError(w, status, msg)
			return
		}
		writeError(w, http.StatusBadRequest, "User creation failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetUser returns a user's details by ID.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No user with id: %d", id))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial patch to an existing user.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("User %d not found.", id))
			return
		}
		if status, msg, ok := businessError(err); ok {
			writeError(w, status, msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user account by ID.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, fmt.Sprintf("User %d not found", id))
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("User %d deleted successfully", id))
}

// businessError maps service rule violations to a status code and the
// user-facing message.
func businessError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict, msgUsernameTaken, true
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict, msgEmailTaken, true
	case errors.Is(err, services.ErrPasswordUnchanged):
		return http.StatusBadRequest, msgPasswordUnchanged, true
	default:
		return 0, "", false
	}
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
