package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/models"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken("user-1", cfg)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)

	_, err = ParseJWTToken(token, &config.Config{JWTSecret: "other"})
	assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
}

func TestJWTRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseJWTToken(signed, cfg)
	assert.Error(t, err)
}

func TestIsTokenCurrent(t *testing.T) {
	issued := time.Now()
	claims := TokenClaims{UserID: "u", IssuedAt: issued}

	assert.True(t, IsTokenCurrent(claims, models.User{}))
	assert.True(t, IsTokenCurrent(claims, models.User{PasswordChangedAt: issued.Add(-time.Hour)}))
	assert.False(t, IsTokenCurrent(claims, models.User{PasswordChangedAt: issued.Add(time.Hour)}))
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		env        string
		err        error
		wantStatus int
		wantMsg    string
		wantStack  bool
	}{
		{"classified", "development", apperror.NotFound("Result not found"), 404, "Result not found", true},
		{"payment", "production", apperror.PaymentRequired("Payment required"), 402, "Payment required", false},
		{"fiber", "production", fiber.ErrMethodNotAllowed, 405, "Method Not Allowed", false},
		{"internal dev", "development", errors.New("db down"), 500, "db down", true},
		{"internal prod", "production", errors.New("db down"), 500, "Internal server error", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Env: tc.env}
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(cfg, log.New(io.Discard, "", 0))})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body ErrorResponse
			raw, _ := io.ReadAll(resp.Body)
			require.NoError(t, json.NewDecoder(bytes.NewReader(raw)).Decode(&body))
			assert.Equal(t, tc.wantMsg, body.Message)
			assert.Equal(t, tc.wantStack, body.Stack != "")
		})
	}
}
