package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tgienger/todo/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
}

// validatePriority validates that a string is a valid Priority enum value
func validatePriority(fl validator.FieldLevel) bool {
	return models.Priority(fl.Field().String()).Valid()
}

// NormalizeTitle trims surrounding whitespace from a task title or tag name
func NormalizeTitle(s string) string {
	return strings.TrimSpace(s)
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	if err := Validate.Var(value, "priority"); err != nil {
		return fmt.Errorf("invalid priority: %s (must be 'high', 'medium', or 'low')", value)
	}
	return nil
}

// ValidateTask checks the struct-level constraints of a task loaded from storage
func ValidateTask(t models.Task) error {
	return Validate.Struct(t)
}

// ValidateTag checks the struct-level constraints of a tag loaded from storage
func ValidateTag(t models.Tag) error {
	return Validate.Struct(t)
}
