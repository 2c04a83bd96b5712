package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusMapper translates domain errors into HTTP status codes. It returns
// false for errors it does not know.
type StatusMapper func(err error) (int, bool)

// ErrorHandlerMiddleware renders any error returned further down the chain as
// an ErrorResponse envelope.
func ErrorHandlerMiddleware(mappers ...StatusMapper) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		} else {
			for _, m := range mappers {
				if c, ok := m(err); ok {
					code = c
					break
				}
			}
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
