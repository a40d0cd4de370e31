package http

import (
	"encoding/json"
	"errors"
	"net/http"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	orderdomain "github.com/Muzammil2410/fiver-sub001/internal/order/domain"
	reviewdomain "github.com/Muzammil2410/fiver-sub001/internal/review/domain"
	userdomain "github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

// envelope is the response shape every endpoint uses.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: message})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; raw collaborator errors stay
// server-side.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gigdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, reviewdomain.ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, gigdomain.ErrForbidden),
		errors.Is(err, orderdomain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, gigdomain.ErrInvalidInput),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, reviewdomain.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reviewdomain.ErrAlreadyExists),
		errors.Is(err, userdomain.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
