package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/middleware"
	"iqscaler/backend/models"
)

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Validation("Invalid request body: " + err.Error())
	}
	return nil
}

// publicBaseURL is where links in emails and certificates point: the
// configured client URL, or the host the request came in on.
func publicBaseURL(c *fiber.Ctx, cfg *config.Config) string {
	if cfg.ClientURL != "" {
		return strings.TrimRight(cfg.ClientURL, "/")
	}
	return c.BaseURL()
}

func viewer(c *fiber.Ctx) (models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return models.User{}, apperror.Authentication("Not authorized, no token")
	}
	return user, nil
}
