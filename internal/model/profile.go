package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AadhaarStatusYes     = "yes"
	AadhaarStatusNo      = "no"
	AadhaarStatusUnknown = "unknown"
)

// Profile wizard stages, derived from the stored sections.
const (
	StageEmpty     = "EMPTY"
	StageStep1Done = "STEP1_DONE"
	StageStep2Done = "STEP2_DONE"
	StageStep3Done = "STEP3_DONE"
	StageSubmitted = "SUBMITTED"
)

const (
	SectionAadhaar     = "aadhaar"
	SectionLocation    = "location"
	SectionDescription = "description"
)

type Aadhaar struct {
	PhotoURL string `json:"photo_url"`
	Status   string `json:"status"`
}

// ProfileLocation is rendered as a GeoJSON Point
type ProfileLocation struct {
	Type        string  `json:"type"`
	Coordinates LngLat  `json:"coordinates"`
	Address     *string `json:"address,omitempty"`
}

// Point returns the canonical coordinate of the location.
func (l ProfileLocation) Point() GeoPoint {
	return GeoPoint(l.Coordinates)
}

// VolunteerProfile is the one-to-one profile record of a volunteer. Sections are nil
// until the corresponding wizard step has been submitted.
type VolunteerProfile struct {
	UserID           uuid.UUID        `json:"user_id"`
	Aadhaar          *Aadhaar         `json:"aadhaar"`
	PhoneIfNoAadhaar *string          `json:"phone_if_no_aadhaar,omitempty"`
	Location         *ProfileLocation `json:"location"`
	Description      *string          `json:"description"`
	IsComplete       bool             `json:"is_complete"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ProfileView is returned by GET /volunteer/profile. Profile is nil when the volunteer
// has not started the wizard.
type ProfileView struct {
	Profile         *VolunteerProfile `json:"profile"`
	Stage           string            `json:"stage"`
	MissingSections []string          `json:"missing_sections"`
}

// Step1Request carries the aadhaar section
type Step1Request struct {
	Aadhaar          AadhaarInput `json:"aadhaar"`
	PhoneIfNoAadhaar *string      `json:"phoneIfNoAadhaar"`
}

type AadhaarInput struct {
	PhotoURL string `json:"photoUrl" validate:"omitempty,url,max=2048"`
	Status   string `json:"status" validate:"required,oneof=yes no unknown"`
}

// Step2Request carries the location section; coordinates are [longitude, latitude]
type Step2Request struct {
	Location LocationInput `json:"location"`
}

type LocationInput struct {
	Coordinates []float64 `json:"coordinates"`
	Address     *string   `json:"address" validate:"omitempty,max=500"`
}

// Step3Request carries the free-text description
type Step3Request struct {
	Description string `json:"description"`
}
