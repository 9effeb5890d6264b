package validator

import (
	"log"

	"gigcampus_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum validation tags used by the DTOs.
// Empty values pass so that 'required' stays the single source of presence checks.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-category", validateCategory)
	mustRegister("is-budget-type", validateBudgetType)
	mustRegister("is-priority", validatePriority)
	mustRegister("is-rating-type", validateRatingType)
	mustRegister("is-project-status", validateProjectStatus)
}

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidCategory(models.ProjectCategory(value))
}

func validateBudgetType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BudgetType(value) {
	case models.BudgetTypeFixed, models.BudgetTypeHourly:
		return true
	default:
		return false
	}
}

func validatePriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProjectPriority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return true
	default:
		return false
	}
}

func validateRatingType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidRatingType(models.RatingType(value))
}

func validateProjectStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProjectStatus(value) {
	case models.ProjectStatusOpen, models.ProjectStatusInProgress, models.ProjectStatusCompleted,
		models.ProjectStatusCancelled, models.ProjectStatusDisputed:
		return true
	default:
		return false
	}
}
