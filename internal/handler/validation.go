package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondValidationError writes a 422 with field-level messages in the
// {"errors": {field: [messages]}} shape.
func respondValidationError(c *gin.Context, err error) {
	errs := gin.H{}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			field := snakeCase(fieldErr.Field())
			errs[field] = []string{fieldMessage(field, fieldErr)}
		}
	} else {
		errs["body"] = []string{"The request body is malformed."}
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}

// respondFieldError writes a 422 for a single failing field, e.g. a
// duplicate email or bad credentials.
func respondFieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": "The given data was invalid.",
		"errors":  gin.H{field: []string{message}},
	})
}

func fieldMessage(field string, fieldErr validator.FieldError) string {
	name := strings.ReplaceAll(field, "_", " ")

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", name, fieldErr.Param())
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", name, fieldErr.Param())
	case "eqfield":
		return "The password confirmation does not match."
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
