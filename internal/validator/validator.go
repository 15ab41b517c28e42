package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/aulalink/activity-service/internal/errors"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation with content-level rules.
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:  structValidator,
		contentValidator: NewContentValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate runs struct-tag validation and converts failures into the
// service error taxonomy so handlers can map them to a 400.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// Content returns the content validator
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("zone_type", validateZoneType)
	validate.RegisterValidation("content_kind", validateContentKind)
	validate.RegisterValidation("activity_type", validateActivityType)
	validate.RegisterValidation("assignment_type", validateAssignmentType)

	// Use json tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateZoneType(fl validator.FieldLevel) bool {
	validTypes := []models.ZoneType{
		models.ZoneTextInput,
		models.ZoneDropZone,
		models.ZoneSelectable,
		models.ZoneMatchSource,
		models.ZoneMatchTarget,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateContentKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.ContentQuiz) || value == string(models.ContentWorksheet)
}

func validateActivityType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.ActivityTask) || value == string(models.ActivityInteractive)
}

func validateAssignmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.AssignmentOrdinary) || value == string(models.AssignmentNEMEvaluation)
}
