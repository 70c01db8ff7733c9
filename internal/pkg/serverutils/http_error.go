package serverutils

import "github.com/gofiber/fiber/v2"

// HttpError carries a status code up to the error handler
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func BadRequest(message string, err error) *HttpError {
	return NewHttpError(fiber.StatusBadRequest, message, err)
}

func NotFound(message string, err error) *HttpError {
	return NewHttpError(fiber.StatusNotFound, message, err)
}

func Conflict(message string, err error) *HttpError {
	return NewHttpError(fiber.StatusConflict, message, err)
}

func InternalServerError(message string, err error) *HttpError {
	return NewHttpError(fiber.StatusInternalServerError, message, err)
}

func Unauthorized(message string) *HttpError {
	return NewHttpError(fiber.StatusUnauthorized, message, nil)
}
