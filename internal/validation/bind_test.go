package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"volunteer_platform/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBindError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		target  interface{}
		field   string
		message string
	}{
		{"string in coordinates", `{"location":{"coordinates":["a",1]}}`, &model.Step2Request{}, "location.coordinates", "must be a number"},
		{"number for description", `{"description":42}`, &model.Step3Request{}, "description", "must be a string"},
		{"object for coordinates", `{"location_coordinates":{"lat":1}}`, &model.CreateSurveyRequest{}, "location_coordinates", "must be an array"},
		{"truncated body", `{"description":`, &model.Step3Request{}, BodyField, "must be a valid JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.body), tt.target)
			require.Error(t, err)

			errs := FromBindError(err)
			require.Len(t, errs.Fields, 1)
			assert.Equal(t, tt.field, errs.Fields[0].Field)
			assert.Equal(t, tt.message, errs.Fields[0].Message)
		})
	}
}

func TestFromBindError_Unknown(t *testing.T) {
	errs := FromBindError(errors.New("boom"))
	assert.Equal(t, []FieldError{{Field: BodyField, Message: "boom"}}, errs.Fields)
	assert.Error(t, errs.Err())
}
