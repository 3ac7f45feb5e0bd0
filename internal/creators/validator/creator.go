package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

var (
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type CreatorValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCreatorValidator(log *logger.Logger) *CreatorValidator {
	v := validator.New()

	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		log.Fatal("Failed to register 'slug' validator",
			"error", err,
		)
	}

	return &CreatorValidator{
		validate: v,
		logger:   log,
	}
}

// validateSlug accepts lowercase alphanumerics separated by single
// hyphens, with no leading or trailing hyphen.
func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func (v *CreatorValidator) Validate(creator *model.Creator) error {
	return v.translate(v.validate.Struct(creator))
}

func (v *CreatorValidator) ValidateSignup(req *model.SignupRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *CreatorValidator) ValidateUpdate(updates *model.CreatorUpdate) error {
	return v.translate(v.validate.Struct(updates))
}

func (v *CreatorValidator) ValidateResetPassword(req *model.ResetPasswordRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *CreatorValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(validationErrs)
	}
	return err
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA timezone (e.g., America/New_York)", err.Field())
		case "slug":
			message = fmt.Sprintf("%s must contain only lowercase letters, numbers and single hyphens", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
