package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "farmgate/internal/log"
	"farmgate/internal/repos"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

// Stable error codes consumed by clients instead of matching on message
// strings.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeOrderCreationFailed = "ORDER_CREATION_FAILED"
	CodeServerError         = "SERVER_ERROR"
)

type errorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": errorBody{Code: code, Message: message}})
}

func failFields(c *fiber.Ctx, fields []validate.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errorBody{
		Code:    CodeValidation,
		Message: "invalid request",
		Fields:  fields,
	}})
}

// failErr maps service/store errors onto the HTTP taxonomy. Unexpected
// errors are logged and surfaced as a generic 500 without internals.
func failErr(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return failFields(c, verr.Fields)
	}
	var serr *services.InvalidStatusError
	if errors.As(err, &serr) {
		return fail(c, fiber.StatusBadRequest, CodeValidation, serr.Error())
	}
	var terr *services.InvalidTransitionError
	if errors.As(err, &terr) {
		return fail(c, fiber.StatusBadRequest, CodeInvalidTransition, terr.Error())
	}
	var stkerr *repos.StockError
	if errors.As(err, &stkerr) {
		return fail(c, fiber.StatusConflict, CodeInsufficientStock, stkerr.Error())
	}
	if errors.Is(err, repos.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "resource not found")
	}
	if errors.Is(err, repos.ErrDuplicate) {
		return fail(c, fiber.StatusConflict, CodeConflict, "resource already exists")
	}
	applog.Error(c, action, err, nil)
	return fail(c, fiber.StatusInternalServerError, CodeServerError, "something went wrong, please try again")
}
