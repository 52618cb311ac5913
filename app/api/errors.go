package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"patentsearch/types"
)

// ErrorHandler maps typed failures onto JSON error envelopes. Validation
// problems come back as 422, pipeline failures keep their original message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiError, ok := err.(Error); ok {
		return c.Status(apiError.Code).JSON(apiError)
	}
	if valError, ok := err.(ValidationError); ok {
		return c.Status(valError.Status).JSON(valError)
	}

	var ingestErr *types.IngestionError
	if errors.As(err, &ingestErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(NewError(fiber.StatusInternalServerError, ingestErr.Error()))
	}
	var searchErr *types.SearchError
	if errors.As(err, &searchErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(NewError(fiber.StatusInternalServerError, searchErr.Error()))
	}

	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	apiError := NewError(code, err.Error())
	log.Printf("request failed with code %d and message: %s", apiError.Code, apiError.Message)
	return c.Status(apiError.Code).JSON(apiError)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}
