// utils/validation.go
package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is one violated rule, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Messages for known fields, keyed by JSON path without slice indexes. The
// "*" entry applies to any rule without its own message.
var fieldMessages = map[string]map[string]string{
	"categoryName": {
		"required": "Category name is required",
		"*":        "Category name must be between 2 and 255 characters",
	},
	"serviceName": {
		"required": "Service name is required",
		"*":        "Service name must be between 2 and 255 characters",
	},
	"type": {
		"*": "Type must be either Normal or VIP",
	},
	"priceOptions": {
		"*": "At least one price option is required",
	},
	"priceOptions.duration": {
		"*": "Duration must be a positive integer",
	},
	"priceOptions.price": {
		"lte": "Price must not exceed 99999999.99",
		"*":   "Price must be a positive number",
	},
	"priceOptions.type": {
		"*": "Price option type must be Hourly, Weekly, or Monthly",
	},
	"email": {
		"*": "Email and password are required",
	},
	"password": {
		"*": "Email and password are required",
	},
}

var sliceIndex = regexp.MustCompile(`\[\d+\]`)

// ValidateStruct runs every rule on s and returns all violations, or nil.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		path := fieldPath(e)
		fields = append(fields, FieldError{Field: path, Message: fieldMessage(path, e)})
	}
	return fields
}

// fieldPath drops the root struct name from the namespace:
// "CreateServiceInput.priceOptions[0].price" -> "priceOptions[0].price".
func fieldPath(e validator.FieldError) string {
	_, path, found := strings.Cut(e.Namespace(), ".")
	if !found {
		return e.Field()
	}
	return path
}

func fieldMessage(path string, e validator.FieldError) string {
	if messages, ok := fieldMessages[sliceIndex.ReplaceAllString(path, "")]; ok {
		if msg, ok := messages[e.Tag()]; ok {
			return msg
		}
		if msg, ok := messages["*"]; ok {
			return msg
		}
	}
	return formatFieldError(e)
}

// formatFieldError is the fallback for fields without a dedicated message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s is out of range", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ParseID reads a positive integer identifier such as a path parameter.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// BindError converts a JSON decoding failure into a single field violation.
func BindError(err error) []FieldError {
	return []FieldError{{Field: "body", Message: "Invalid request body: " + err.Error()}}
}
