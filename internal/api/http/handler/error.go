package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okunev/usermgmt/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleError maps domain errors to HTTP statuses. Authentication
// failures (401) are kept distinct from authorization denials (403)
// and from missing resources (404). Internal details never reach
// the response body.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrPrincipalNotFound),
		errors.Is(err, model.ErrInactiveAccount):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "could not validate credentials")
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, model.ErrForbidden.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, model.ErrUsernameTaken):
		writeError(w, http.StatusConflict, model.ErrUsernameTaken.Error())
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusConflict, model.ErrEmailTaken.Error())
	case errors.Is(err, model.ErrPasswordTooShort):
		writeError(w, http.StatusUnprocessableEntity, model.ErrPasswordTooShort.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
