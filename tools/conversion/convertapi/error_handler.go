package convertapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/toolomni/engine/pkg/errx"
	"github.com/toolomni/engine/pkg/logx"
)

// ErrorHandler maps service errors onto HTTP responses. Registered as the
// fiber app's global error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := errx.As(err); ok {
		if e.Type == errx.TypeInternal {
			logx.Errorf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	logx.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
