package services

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"bjjtracker/internal/apperr"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// newValidator reports failing fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return apperr.FromValidator(err)
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates; a plain
// date is midnight UTC.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("Validation failed", map[string]string{
		field: fmt.Sprintf("Field '%s' must be an RFC 3339 timestamp or a YYYY-MM-DD date", field),
	})
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setList(dst *datatypes.JSONSlice[string], v *[]string) {
	if v == nil {
		return
	}
	list := make(datatypes.JSONSlice[string], 0, len(*v))
	for _, s := range *v {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	*dst = list
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
