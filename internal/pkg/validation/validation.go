// Package validation evaluates the validate struct tags of request DTOs.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"notetaking-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// report json names
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Validate checks req and returns a *apperror.ValidationError listing every
// violated rule, or nil.
func Validate(req interface{}) error {
	err := get().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failures := make([]apperror.FieldFailure, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failures = append(failures, apperror.FieldFailure{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return &apperror.ValidationError{Failures: failures}
}

// fieldPath drops the root struct name: "SaveTagRequest.tag.name" becomes "tag.name".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
