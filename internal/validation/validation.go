package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks entity payloads against their schema tags and reports
// failures as a field-keyed message map, so handlers can return the map
// directly in a 400 body.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Decimal fields are validated through their
// float value so numeric tags (gte, gt) apply to them, and error keys use
// the JSON field names rather than the Go struct field names.
func New() *Validator {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v}
}

// Check validates s and returns a map of field name to failure message.
// A nil map means the payload is valid.
func (v *Validator) Check(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
