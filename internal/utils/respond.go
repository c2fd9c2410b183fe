package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Respond writes the standard success envelope used by every endpoint.
func Respond(c *fiber.Ctx, status int, code, message string, data interface{}) error {
	body := fiber.Map{
		"code":    code,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler converts handler errors into the error envelope. Client errors
// keep their message; anything unexpected becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong, please try again later"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(status).JSON(fiber.Map{
		"code":    "error",
		"message": message,
	})
}
