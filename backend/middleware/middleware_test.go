package middleware_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqscaler/backend/cache"
	"iqscaler/backend/config"
	"iqscaler/backend/mailer/mailertest"
	"iqscaler/backend/middleware"
	"iqscaler/backend/models"
	"iqscaler/backend/services"
	"iqscaler/backend/store/storetest"
	"iqscaler/backend/utils"
)

func newApp(t *testing.T) (*fiber.App, *config.Config, *services.UserService, func(models.User) models.User) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "testsecret", Env: "test"}
	st := storetest.New(t)
	users := services.NewUserService(st.Users(), &mailertest.Recorder{}, cache.Nop{}, cfg, log.New(io.Discard, "", 0))

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(cfg, log.New(io.Discard, "", 0))})
	app.Get("/me", middleware.Protect(users, cfg), func(c *fiber.Ctx) error {
		u, _ := middleware.CurrentUser(c)
		return c.SendString(u.Username)
	})
	app.Get("/admin", middleware.Protect(users, cfg), middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	create := func(u models.User) models.User {
		require.NoError(t, st.Users().Create(context.Background(), &u))
		return u
	}
	return app, cfg, users, create
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestProtect(t *testing.T) {
	app, cfg, _, create := newApp(t)
	ada := create(models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"})
	token, err := utils.GenerateJWTToken(ada.ID, cfg)
	require.NoError(t, err)

	status, body := get(t, app, "/me", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ada", body)

	status, _ = get(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "/me", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	ghost, err := utils.GenerateJWTToken("ghost", cfg)
	require.NoError(t, err)
	status, _ = get(t, app, "/me", ghost)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestProtectRejectsTokensFromBeforePasswordChange(t *testing.T) {
	app, cfg, _, create := newApp(t)
	ada := create(models.User{
		Username:          "ada",
		Email:             "ada@example.com",
		PasswordHash:      "x",
		PasswordChangedAt: time.Now().Add(time.Hour),
	})
	token, err := utils.GenerateJWTToken(ada.ID, cfg)
	require.NoError(t, err)

	status, _ := get(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminOnly(t *testing.T) {
	app, cfg, _, create := newApp(t)
	ada := create(models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"})
	root := create(models.User{Username: "root", Email: "root@example.com", PasswordHash: "x", IsAdmin: true})

	adaToken, _ := utils.GenerateJWTToken(ada.ID, cfg)
	rootToken, _ := utils.GenerateJWTToken(root.ID, cfg)

	status, _ := get(t, app, "/admin", adaToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = get(t, app, "/admin", rootToken)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestLoggingMiddlewareRecordsErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	cfg := &config.Config{Env: "test"}
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(cfg, log.New(io.Discard, "", 0))})
	app.Use(middleware.LoggingMiddleware(logger))
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GET")
	assert.Contains(t, buf.String(), "/missing")
	assert.Contains(t, buf.String(), "404")
}
