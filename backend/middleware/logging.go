package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
)

const colorReset = "\033[0m"

// LoggingMiddleware logs one line per request. Colours are used unless the
// logger writes json (no Lshortfile flag).
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = errorStatus(err)
		}
		method := c.Method()

		var statusColor, methodColor, reset string
		if logger.Flags()&log.Lshortfile != 0 {
			statusColor, methodColor, reset = getStatusColor(status), getMethodColor(method), colorReset
		}

		logger.Printf("%s %s%s%s %s %s%d%s %s %q err=%v",
			c.IP(),
			methodColor, method, reset,
			c.Path(),
			statusColor, status, reset,
			time.Since(start),
			c.Get(fiber.HeaderUserAgent),
			err,
		)

		return err
	}
}

// errorStatus is the status the error handler will write; the response
// code is not set yet when a handler returns an error.
func errorStatus(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperror.StatusOf(err)
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m"
	case status >= 400:
		return "\033[33m"
	case status >= 300:
		return "\033[36m"
	case status >= 200:
		return "\033[32m"
	default:
		return "\033[37m"
	}
}

func getMethodColor(method string) string {
	switch method {
	case fiber.MethodGet:
		return "\033[34m"
	case fiber.MethodPost:
		return "\033[33m"
	case fiber.MethodPut:
		return "\033[36m"
	case fiber.MethodDelete:
		return "\033[31m"
	case fiber.MethodPatch:
		return "\033[32m"
	default:
		return "\033[37m"
	}
}
