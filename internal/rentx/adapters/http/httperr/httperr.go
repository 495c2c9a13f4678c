// Package httperr maps domain errors onto HTTP status codes.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/domain/services"
)

// StatusOf returns the HTTP status for a domain error: validation failures
// are 400, missing records 404, uniqueness and concurrency conflicts 409,
// authentication failures 401, everything else 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrEmptyUserID),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrUserAlreadyExists),
		errors.Is(err, entities.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrNotAuthenticated),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrRevokedRefreshToken),
		errors.Is(err, services.ErrInvalidJWTToken),
		errors.Is(err, services.ErrExpiredJWTToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as the standard {"error": ...} body with the
// status StatusOf assigns. Internal errors are not echoed to the client.
func Respond(ctx fiber.Ctx, err error) error {
	status := StatusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// BadRequest writes a 400 with the given message.
func BadRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
