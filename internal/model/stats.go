package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionComplete   = "Complete"
	SubmissionIncomplete = "Incomplete"
)

// DashboardStats is recomputed from the stores on every request
type DashboardStats struct {
	TotalVolunteers    int                `json:"totalVolunteers"`
	CompleteProfiles   int                `json:"completeProfiles"`
	IncompleteProfiles int                `json:"incompleteProfiles"`
	TotalSurveys       int                `json:"totalSurveys"`
	SurveysThisMonth   int                `json:"surveysThisMonth"`
	SurveysThisWeek    int                `json:"surveysThisWeek"`
	AadhaarStats       AadhaarStats       `json:"aadhaarStats"`
	RecentSubmissions  []RecentSubmission `json:"recentSubmissions"`
}

type AadhaarStats struct {
	HaveAadhaar int `json:"haveAadhaar"`
	NoAadhaar   int `json:"noAadhaar"`
	Unknown     int `json:"unknown"`
}

type RecentSubmission struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// VolunteerSummary is one row of the admin volunteer table
type VolunteerSummary struct {
	User           User              `json:"user"`
	Profile        *VolunteerProfile `json:"profile"`
	SurveyCount    int               `json:"survey_count"`
	LastSurveyDate *time.Time        `json:"last_survey_date"`
}

// VolunteerDetail is the single-volunteer deep view for admins
type VolunteerDetail struct {
	User        User              `json:"user"`
	Profile     *VolunteerProfile `json:"profile"`
	Surveys     []Survey          `json:"surveys"`
	SurveyCount int               `json:"survey_count"`
}
