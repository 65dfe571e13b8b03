package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"griddle/app/auth"
	"griddle/app/repositories"
	"griddle/app/services"

	"github.com/sirupsen/logrus"
)

// sendJSON writes v as a JSON response with the given status.
func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendMessage writes a {"message": ...} body with the given status.
func sendMessage(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"message": message})
}

// sendError maps a service or repository error to its status code and
// a client-safe message body. Storage failures are logged with full
// detail server-side; the client only sees a generic message.
func sendError(w http.ResponseWriter, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, repositories.ErrDuplicateUsername):
		sendMessage(w, http.StatusConflict, "username already exists")
	case errors.Is(err, services.ErrValidation):
		sendMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAuthenticationFailed):
		sendMessage(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, auth.ErrUnauthenticated):
		sendMessage(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, auth.ErrForbidden):
		sendMessage(w, http.StatusForbidden, "insufficient privileges")
	default:
		log.WithError(err).Error("storage error")
		sendMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
