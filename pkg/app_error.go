// Package pkg holds small cross-layer helpers, currently the application
// error type the HTTP handlers translate domain errors into.
package pkg

import "fmt"

// AppError couples a stable machine-readable code with the HTTP status and
// the message shown to the caller. Wrapped internal errors stay server-side;
// only Message ever reaches the client.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPError is the JSON envelope for every 4xx/5xx response.
type HTTPError struct {
	Error string `json:"error"`
}

// ToHTTPError renders the client-facing envelope. Internal details are
// deliberately dropped here.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Error: e.Message}
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}
