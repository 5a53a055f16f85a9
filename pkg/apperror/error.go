package apperror

import "net/http"

// AppError is an error that knows its HTTP status and a message safe to show
// to the client. Err stays server-side.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Detail is an optional short string placed in the response's error field.
	Detail string `json:"-"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail sets the client-visible error string.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func ServiceUnavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
