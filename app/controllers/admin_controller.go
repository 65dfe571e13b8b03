package controllers

import (
	"net/http"

	"griddle/app/auth"
	"griddle/app/middleware"
	"griddle/app/services"

	"github.com/sirupsen/logrus"
)

// AdminController handles admin-only endpoints.
type AdminController struct {
	userService *services.UserService
	log         *logrus.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(userService *services.UserService, log *logrus.Logger) *AdminController {
	return &AdminController{userService: userService, log: log}
}

// ListUsers handles GET /api/admin/users
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromRequest(r)
	if err := auth.Decide(claims, auth.ActionListUsers, nil); err != nil {
		sendError(w, ac.log, err)
		return
	}

	users, err := ac.userService.ListUsers()
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]interface{}{
			"id":         u.ID,
			"username":   u.Username,
			"role":       u.Role,
			"created_at": u.CreatedAt,
		})
	}
	sendJSON(w, http.StatusOK, out)
}
