package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest parses the JSON body into out and runs struct validation.
// Returns a client-facing error message when the payload is bad.
func ValidateRequest(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("invalid request body")
	}

	if err := validate.Struct(out); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("invalid or missing fields: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid request payload")
	}
	return nil
}
