package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateBody parses the request body into dest and checks its validate
// tags. A failure is returned as a *fiber.Error carrying the 400 status, so
// the global error handler renders the response envelope; callers must stop
// on a non-nil return before touching any service.
func ValidateBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Struct(dest); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		firstError := validationErrors[0]

		var errorMessage string
		switch firstError.Tag() {
		case "required":
			errorMessage = firstError.Field() + " is required"
		case "email":
			errorMessage = "Invalid email format"
		case "min":
			errorMessage = firstError.Field() + " is too short"
		case "max":
			errorMessage = firstError.Field() + " is too long"
		case "uuid":
			errorMessage = "Invalid UUID format"
		case "oneof":
			errorMessage = firstError.Field() + " must be one of: " + firstError.Param()
		case "gte":
			errorMessage = firstError.Field() + " must be at least " + firstError.Param()
		default:
			errorMessage = "Validation failed for " + firstError.Field()
		}

		return fiber.NewError(fiber.StatusBadRequest, errorMessage)
	}

	return nil
}
