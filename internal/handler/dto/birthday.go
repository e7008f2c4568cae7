// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// SaveBirthdayRequest documents the body of PUT /hello/{username}. The
// handler passes the raw body to the service, which decodes it field by
// field so that each rule can report its own error.
type SaveBirthdayRequest struct {
	DateOfBirth string `json:"dateOfBirth"`
}

// GreetingResponse is returned by GET /hello/{username}.
type GreetingResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
