package service

import (
	"strings"
	"unicode/utf8"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/validation"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 1000
)

// MissingSections lists the sections that keep p from being submitted, in wizard order.
// It depends only on the stored sections, never on the order they were written in.
func MissingSections(p *model.VolunteerProfile) []string {
	if p == nil {
		return []string{model.SectionAadhaar, model.SectionLocation, model.SectionDescription}
	}
	missing := []string{}
	if !aadhaarSectionValid(p) {
		missing = append(missing, model.SectionAadhaar)
	}
	if p.Location == nil || !validation.ValidPoint(p.Location.Point()) {
		missing = append(missing, model.SectionLocation)
	}
	if p.Description == nil || !descriptionValid(*p.Description) {
		missing = append(missing, model.SectionDescription)
	}
	return missing
}

// IsReadyForSubmission is the workflow's submission gate: all three sections present
// and individually valid.
func IsReadyForSubmission(p *model.VolunteerProfile) bool {
	return p != nil && len(MissingSections(p)) == 0
}

// HasAadhaarAndLocation is the dashboard's notion of a complete profile. It is
// deliberately narrower than IsReadyForSubmission and ignores the description.
func HasAadhaarAndLocation(p *model.VolunteerProfile) bool {
	return p != nil && p.Aadhaar != nil && p.Aadhaar.Status != "" && p.Location != nil
}

// ProfileStage derives the wizard state from the stored sections
func ProfileStage(p *model.VolunteerProfile) string {
	switch {
	case p == nil || p.Aadhaar == nil:
		return model.StageEmpty
	case p.IsComplete:
		return model.StageSubmitted
	case p.Location == nil:
		return model.StageStep1Done
	case p.Description == nil:
		return model.StageStep2Done
	default:
		return model.StageStep3Done
	}
}

func aadhaarSectionValid(p *model.VolunteerProfile) bool {
	a := p.Aadhaar
	if a == nil || a.PhotoURL == "" {
		return false
	}
	switch a.Status {
	case model.AadhaarStatusNo:
		return p.PhoneIfNoAadhaar != nil && validation.ValidPhone(*p.PhoneIfNoAadhaar)
	case model.AadhaarStatusYes, model.AadhaarStatusUnknown:
		return true
	}
	return false
}

func descriptionValid(d string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(d))
	return n >= minDescriptionLen && n <= maxDescriptionLen
}
