// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New creates a Validator with the catalog specific tags registered.
func New() *Validator {
	validate := playground.New(playground.WithRequiredStructEnabled())
	// Tags cannot fail to register with a non-empty name and a non-nil func
	_ = validate.RegisterValidation("category", validateCategory)
	_ = validate.RegisterValidation("category_filter", validateCategoryFilter)
	validate.RegisterTagNameFunc(fieldName)

	return &Validator{validate: validate}
}

// Validate validates i and reports failures as a validation AppError.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "category", "category_filter":
		return fmt.Sprintf("%s is not a known category", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// fieldName reports fields by their json or query name.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

func validateCategory(fl playground.FieldLevel) bool {
	return entity.Category(fl.Field().String()).IsValid()
}

func validateCategoryFilter(fl playground.FieldLevel) bool {
	category := entity.Category(fl.Field().String())

	return category.IsAll() || category.IsValid()
}
