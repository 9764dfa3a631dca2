package handler

import (
	"net/http"

	"moviweb/internal/httputil"
	"moviweb/internal/model"
	"moviweb/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns all registered users ordered by username.
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}
