package apierrors

import "net/http"

// APIError is an error carrying the HTTP status and client-visible
// message for a domain-expected failure.
type APIError struct {
	HTTPCode int
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with the given status code and message.
func New(code int, message string) *APIError {
	return &APIError{HTTPCode: code, Message: message}
}

// NewErrUserNotFound is returned when a login references an unknown account.
func NewErrUserNotFound() *APIError {
	return New(http.StatusNotFound, "User Not Found")
}

// NewErrWrongPassword is returned when the submitted password does not
// match the stored hash.
func NewErrWrongPassword() *APIError {
	return New(http.StatusUnauthorized, "Wrong Password!!")
}

// NewErrUnauthorized is returned for any token verification failure.
// The kind of failure is deliberately not surfaced to the caller.
func NewErrUnauthorized() *APIError {
	return New(http.StatusUnauthorized, "Unauthorized")
}

// NewErrNoRefreshToken is returned when the refresh path is selected
// without a refresh token.
func NewErrNoRefreshToken() *APIError {
	return New(http.StatusNotFound, "No refresh token defined")
}

// NewErrLoginTypeNotDefined is returned when a login request omits the
// type discriminator.
func NewErrLoginTypeNotDefined() *APIError {
	return New(http.StatusNotFound, "type is not defined")
}

// NewErrUserNotCreated is returned when the store rejects an account create.
func NewErrUserNotCreated() *APIError {
	return New(http.StatusNotFound, "User not created!!")
}

// NewErrBadRequest is returned for malformed or invalid request payloads.
func NewErrBadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}
