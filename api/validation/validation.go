package validation

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"

	"github.com/followjobs/followjobs/internal/enum"
)

// RegisterValidators installs the custom binding tags on gin's validator and
// makes field errors report json names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return errors.Wrap(err, "register notblank")
	}
	if err := v.RegisterValidation("applicationstatus", isApplicationStatus); err != nil {
		return errors.Wrap(err, "register applicationstatus")
	}
	return nil
}

func isApplicationStatus(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return enum.ApplicationStatus(fl.Field().String()).IsValid()
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
