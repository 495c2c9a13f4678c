package httperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/adapters/http/httperr"
	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/domain/services"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation failure", err: entities.ErrValidation, status: http.StatusBadRequest},
		{name: "invalid email", err: entities.ErrInvalidEmail, status: http.StatusBadRequest},
		{name: "weak password", err: entities.ErrPasswordTooWeak, status: http.StatusBadRequest},
		{name: "product not found", err: entities.ErrProductNotFound, status: http.StatusNotFound},
		{name: "user not found", err: entities.ErrUserNotFound, status: http.StatusNotFound},
		{name: "duplicate user", err: entities.ErrUserAlreadyExists, status: http.StatusConflict},
		{name: "version conflict", err: entities.ErrVersionConflict, status: http.StatusConflict},
		{name: "not authenticated", err: entities.ErrNotAuthenticated, status: http.StatusUnauthorized},
		{name: "invalid credentials", err: services.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "expired access token", err: services.ErrExpiredJWTToken, status: http.StatusUnauthorized},
		{name: "revoked refresh token", err: services.ErrRevokedRefreshToken, status: http.StatusUnauthorized},
		{name: "unknown error", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
		{
			name:   "wrapped error keeps its status",
			err:    fmt.Errorf("updating product: %w", entities.ErrVersionConflict),
			status: http.StatusConflict,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.status, httperr.StatusOf(ttt.err))
		})
	}
}

func respondBody(t *testing.T, err error) (int, map[string]string) {
	t.Helper()

	app := fiber.New()
	app.Get("/fail", func(ctx fiber.Ctx) error {
		return httperr.Respond(ctx, err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, testErr)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))

	return resp.StatusCode, body
}

func TestRespond(t *testing.T) {
	t.Run("domain error message reaches the client", func(t *testing.T) {
		status, body := respondBody(t, entities.ErrProductNotFound)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, entities.ErrProductNotFound.Error(), body["error"])
	})

	t.Run("internal error message is masked", func(t *testing.T) {
		status, body := respondBody(t, errors.New("pq: connection refused at 10.0.0.3"))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "internal server error", body["error"])
	})
}

func TestBadRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(ctx fiber.Ctx) error {
		return httperr.BadRequest(ctx, "invalid request body")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", body["error"])
}
