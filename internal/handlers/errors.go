package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

// FormError is the body of a rejected form submission. Errors is keyed by
// form field name.
type FormError struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, FormError{Message: message})
}
