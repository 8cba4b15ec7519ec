package http

import (
	"fmt"
	"strings"
	"unicode"

	"bookconnect/internal/catalog"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

const maxKeyLength = 128

func init() {
	validate = validator.New()

	validate.RegisterValidation("catalog_ref", validateKey)
	validate.RegisterValidation("book_id", validateKey)
}

// validateKey accepts any non-empty dataset key without control characters,
// up to maxKeyLength bytes. Unknown keys pass and match no books.
func validateKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" || len(key) > maxKeyLength {
		return false
	}
	return strings.IndexFunc(key, unicode.IsControl) < 0
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors []ValidationError
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, param)
		case "catalog_ref":
			message = fmt.Sprintf("%s must be %q or a catalog key", field, catalog.Any)
		case "book_id":
			message = fmt.Sprintf("%s must be a book ID", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: message,
		})
	}

	return errors
}
