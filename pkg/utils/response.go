package utils

import (
	"encoding/json"
	"net/http"

	"jobcard-backend/internal/apperr"
)

// MessageResponse is the body of every error and of bare acknowledgements
type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageResponse{Message: msg})
}

// Error writes err as {"message": ...} with the status its kind maps to
func Error(w http.ResponseWriter, err error) {
	Message(w, apperr.HTTPStatus(err), err.Error())
}

// DecodeJSON reads the request body into v. A malformed body is a validation error.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.New(apperr.KindValidation, "Invalid request body", err)
	}
	return nil
}
