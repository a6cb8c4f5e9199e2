package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// BodyField is reported when the request body as a whole cannot be decoded
const BodyField = "body"

// FromBindError converts a JSON binding failure into field errors so decode
// problems are reported the same way as validation failures.
func FromBindError(err error) *Errors {
	errs := &Errors{}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = BodyField
		}
		errs.Add(field, "must be "+kindName(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		errs.Add(BodyField, "must be a valid JSON object")
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			errs.Add(fieldPath(fe), message(fe))
		}
	default:
		errs.Add(BodyField, err.Error())
	}
	return errs
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	}
	return "a valid " + t.String()
}
