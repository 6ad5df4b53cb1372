package validation

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	apierrors "github.com/fidomax07/vetting-api/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BodyField is the error key used when the request body cannot be decoded.
const BodyField = "body"

// MaxBytesTag limits a string by its encoded length rather than its rune count.
const MaxBytesTag = "maxbytes"

// Validator turns struct tag violations into field-keyed validation errors.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation(MaxBytesTag, maxBytes); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Struct validates s. It returns nil or a *apierrors.Error of kind validation.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return apierrors.Validation(fields)
}

// DecodeJSON decodes the request body into dst without validating it. An
// empty body leaves dst at its zero value so missing fields are reported
// individually by Struct.
func DecodeJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apierrors.ValidationField(BodyField, "The request body is invalid.")
	}
	return nil
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case MaxBytesTag:
		return fmt.Sprintf("The %s may not be greater than %s bytes.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
