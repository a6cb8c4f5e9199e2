package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// Survey is a single field observation about a beneficiary. The location is mandatory.
type Survey struct {
	ID              uuid.UUID `json:"id"`
	VolunteerID     uuid.UUID `json:"volunteer_id"`
	BeggarName      *string   `json:"beggar_name,omitempty"`
	BeggarAge       *int      `json:"beggar_age,omitempty"`
	BeggarGender    *string   `json:"beggar_gender,omitempty"`
	BeggarPhotoURL  *string   `json:"beggar_photo_url,omitempty"`
	Location        LatLng    `json:"location_coordinates"`
	LocationAddress *string   `json:"location_address,omitempty"`
	SurveyNotes     *string   `json:"survey_notes,omitempty"`
	SurveyDate      time.Time `json:"survey_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Point returns the canonical coordinate of the survey.
func (s Survey) Point() GeoPoint {
	return GeoPoint(s.Location)
}

// SurveyWithVolunteer is a survey joined with its author's identity, admin only
type SurveyWithVolunteer struct {
	Survey
	VolunteerEmail string `json:"volunteer_email"`
}

// CreateSurveyRequest is used for creating a new survey.
// LocationCoordinates is [latitude, longitude].
type CreateSurveyRequest struct {
	BeggarName          *string    `json:"beggar_name" validate:"omitempty,max=200"`
	BeggarAge           *int       `json:"beggar_age" validate:"omitempty,min=0,max=120"`
	BeggarGender        *string    `json:"beggar_gender" validate:"omitempty,oneof=male female other unknown"`
	BeggarPhotoURL      *string    `json:"beggar_photo_url" validate:"omitempty,url,max=2048"`
	LocationCoordinates []float64  `json:"location_coordinates"`
	LocationAddress     *string    `json:"location_address" validate:"omitempty,max=500"`
	SurveyNotes         *string    `json:"survey_notes" validate:"omitempty,max=1000"`
	SurveyDate          *time.Time `json:"survey_date"`
}

// UpdateSurveyRequest uses pointers to allow partial updates. A nil
// LocationCoordinates leaves the stored location untouched.
type UpdateSurveyRequest struct {
	BeggarName          *string    `json:"beggar_name" validate:"omitempty,max=200"`
	BeggarAge           *int       `json:"beggar_age" validate:"omitempty,min=0,max=120"`
	BeggarGender        *string    `json:"beggar_gender" validate:"omitempty,oneof=male female other unknown"`
	BeggarPhotoURL      *string    `json:"beggar_photo_url" validate:"omitempty,url,max=2048"`
	LocationCoordinates []float64  `json:"location_coordinates"`
	LocationAddress     *string    `json:"location_address" validate:"omitempty,max=500"`
	SurveyNotes         *string    `json:"survey_notes" validate:"omitempty,max=1000"`
	SurveyDate          *time.Time `json:"survey_date"`
}

// SurveyFilters narrows the admin survey listing
type SurveyFilters struct {
	VolunteerID *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	Near        *GeoPoint
	RadiusKm    float64
}

// VolunteerSurveyStat is the per-volunteer survey count and latest survey date
type VolunteerSurveyStat struct {
	VolunteerID    uuid.UUID
	Count          int
	LastSurveyDate *time.Time
}
