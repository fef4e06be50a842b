package middleware

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/models"
	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

const userKey = "user"

// Protect requires a valid bearer token and loads the caller into Locals.
func Protect(users *services.UserService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return err
		}

		user, err := users.Get(c.UserContext(), claims.UserID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return apperror.Authentication("Not authorized, user not found")
			}
			return err
		}
		if !utils.IsTokenCurrent(claims, user) {
			return apperror.Authentication("Not authorized, password changed since login")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AdminOnly must run after Protect.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			return apperror.Authorization("Not authorized as an admin")
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(userKey).(models.User)
	return user, ok
}
