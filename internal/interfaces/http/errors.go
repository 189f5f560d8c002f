package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/pkg/logger"
)

// Códigos de error del cuerpo {code, message}.
const (
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeInvalidID          = "INVALID_ID"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateCierre    = "DUPLICATE_CIERRE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL"
)

const internalMessage = "error interno del servidor"

// APIError error con status y código HTTP explícitos, para fallos detectados en el handler.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

func badRequest(code, message string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Code: code, Message: message}
}

func invalidBody() *APIError {
	return badRequest(CodeInvalidBody, "cuerpo inválido")
}

// mapError traduce un error a (status, code, message). internal indica un fallo no previsto.
func mapError(err error) (status int, code, message string, internal bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Code, apiErr.Message, false
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation, err.Error(), false
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, CodeEmailExists, domain.ErrEmailAlreadyExists.Error(), false
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusBadRequest, CodeInvalidCredentials, domain.ErrInvalidCredentials.Error(), false
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized, CodeMissingToken, domain.ErrMissingToken.Error(), false
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, CodeInvalidToken, "token inválido o expirado", false
	case errors.Is(err, domain.ErrNotOwned):
		return fiber.StatusForbidden, CodeForbidden, domain.ErrNotOwned.Error(), false
	case errors.Is(err, domain.ErrKioscoNotFound):
		return fiber.StatusNotFound, CodeNotFound, domain.ErrKioscoNotFound.Error(), false
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound, domain.ErrNotFound.Error(), false
	case errors.Is(err, domain.ErrDuplicateCierre):
		return fiber.StatusConflict, CodeDuplicateCierre, domain.ErrDuplicateCierre.Error(), false
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return fe.Code, CodeNotFound, "ruta no encontrada", false
		case fe.Code == fiber.StatusTooManyRequests:
			return fe.Code, CodeRateLimited, "demasiados intentos, probá más tarde", false
		case fe.Code < fiber.StatusInternalServerError:
			return fe.Code, http.StatusText(fe.Code), fe.Message, false
		}
	}
	return fiber.StatusInternalServerError, CodeInternal, internalMessage, true
}

// ErrorHandler convierte cualquier error devuelto por un handler en el cuerpo {code, message}.
// Los 500 se registran con el request id; el cliente solo recibe un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message, internal := mapError(err)
		if internal {
			log.Error().
				Err(err).
				Str("request_id", RequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
	}
}
