package controllers

import (
	"fmt"
	"net/http"

	"griddle/app/auth"
	"griddle/app/services"

	"github.com/sirupsen/logrus"
)

// AuthController handles registration and login.
type AuthController struct {
	userService *services.UserService
	tokens      *auth.TokenManager
	log         *logrus.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, tokens *auth.TokenManager, log *logrus.Logger) *AuthController {
	return &AuthController{
		userService: userService,
		tokens:      tokens,
		log:         log,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := ac.userService.Register(req.Username, req.Password)
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	sendMessage(w, http.StatusCreated, fmt.Sprintf("user %s registered successfully", user.Username))
}

// Login handles POST /api/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := ac.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	token, err := ac.tokens.Issue(user)
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
