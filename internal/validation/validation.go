package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	// ids are validated through their canonical string form
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if id, ok := v.Interface().(uuid.UUID); ok {
			return id.String()
		}
		return nil
	}, uuid.UUID{})

	_ = validate.RegisterValidation("resolution", func(fl validator.FieldLevel) bool {
		label := fl.Field().String()
		return label == model.ResolutionOriginal || model.IsKnownResolution(label)
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar validates a single value against a tag, e.g. "resolution".
func ValidateVar(v interface{}, tag string) error {
	return validate.Var(v, tag)
}

func ErrorsToJson(validationErrs error) (string, error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(validationErrs, &fieldErrs) {
		return "", validationErrs
	}

	errsMap := make(map[string]string)
	for _, fieldErr := range fieldErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
