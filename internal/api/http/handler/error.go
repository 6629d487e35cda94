package handler

import (
	"errors"
	"net/http"

	"github.com/dkarpov/account-service/internal/apierrors"
	"github.com/dkarpov/account-service/internal/model"
)

// handleError maps domain failures to HTTP responses. Anything not
// recognized collapses to 500.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		errorJSON(w, apiErr.HTTPCode, apiErr.Message)
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	errorJSON(w, http.StatusInternalServerError, "Something Went wrong")
}
