package utils

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func Message(c *fiber.Ctx, message string) error {
	return c.JSON(MessageResponse{Message: message})
}

// ErrorHandler is the single place errors become HTTP responses. Stacks are
// included outside production.
func ErrorHandler(cfg *config.Config, logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperror.StatusOf(err)
		message := apperror.MessageOf(err, "")

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status, message = fe.Code, fe.Message
		}
		if message == "" {
			message = "Internal server error"
			if !cfg.IsProduction() {
				message = err.Error()
			}
		}

		if status >= fiber.StatusInternalServerError {
			logger.Printf("%s %s: %+v", c.Method(), c.Path(), err)
		}

		resp := ErrorResponse{Message: message}
		if !cfg.IsProduction() {
			resp.Stack = fmt.Sprintf("%+v", err)
		}
		return c.Status(status).JSON(resp)
	}
}
