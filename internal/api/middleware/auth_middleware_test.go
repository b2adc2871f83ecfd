package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "test-jwt-secret"

func newTestApp() *fiber.App {
	m := NewAuthMiddleware(config.Config{
		JWTSecret:  jwtSecret,
		CookieName: "sb-access-token",
		JobSecret:  "job-secret",
	})

	app := fiber.New()
	app.Get("/api/me", m.AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(uuid.UUID).String())
	})
	app.Post("/jobs/run", m.JobKey(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	userID := uuid.New()
	token, err := utils.GenerateToken(jwtSecret, userID.String(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, userID.String(), string(body))
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	userID := uuid.New()
	token, err := utils.GenerateToken(jwtSecret, userID.String(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: token})

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	wrongSecret, err := utils.GenerateToken("other-secret", uuid.NewString(), time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken(jwtSecret, uuid.NewString(), -time.Hour)
	require.NoError(t, err)
	notUUID, err := utils.GenerateToken(jwtSecret, "42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong secret", "Bearer " + wrongSecret},
		{"expired", "Bearer " + expired},
		{"subject not a uuid", "Bearer " + notUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := newTestApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestJobKey(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer job-secret", http.StatusOK},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "job-secret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := newTestApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestJobKey_EmptySecretRejectsAll(t *testing.T) {
	m := NewAuthMiddleware(config.Config{})
	app := fiber.New()
	app.Post("/jobs/run", m.JobKey(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/jobs/run", nil)
	req.Header.Set("Authorization", "Bearer ")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
