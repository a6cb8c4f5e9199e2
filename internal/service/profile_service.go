package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"volunteer_platform/internal/metrics"
	"volunteer_platform/internal/model"
	"volunteer_platform/internal/repository"
	"volunteer_platform/internal/validation"

	"github.com/google/uuid"
)

// ProfileService drives a volunteer's profile through the three-step wizard and the
// final, irreversible submission.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileView, error)
	SubmitStep1(ctx context.Context, userID uuid.UUID, req model.Step1Request) (*model.VolunteerProfile, error)
	SubmitStep2(ctx context.Context, userID uuid.UUID, req model.Step2Request) (*model.VolunteerProfile, error)
	SubmitStep3(ctx context.Context, userID uuid.UUID, req model.Step3Request) (*model.VolunteerProfile, error)
	Submit(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetProfile never fails for a volunteer without a profile; the view carries a nil profile.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileView, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	missing := MissingSections(p)
	if p != nil && p.IsComplete {
		missing = []string{}
	}
	return &model.ProfileView{
		Profile:         p,
		Stage:           ProfileStage(p),
		MissingSections: missing,
	}, nil
}

func (s *profileService) SubmitStep1(ctx context.Context, userID uuid.UUID, req model.Step1Request) (p *model.VolunteerProfile, err error) {
	defer func() { metrics.RecordProfileStep("step1", err) }()

	errs := validation.Struct(req)
	var phone *string
	if req.Aadhaar.Status == model.AadhaarStatusNo {
		switch {
		case req.PhoneIfNoAadhaar == nil || strings.TrimSpace(*req.PhoneIfNoAadhaar) == "":
			errs.Add("phoneIfNoAadhaar", "is required when aadhaar status is no")
		case !validation.ValidPhone(*req.PhoneIfNoAadhaar):
			errs.Add("phoneIfNoAadhaar", "must contain 10 to 15 digits")
		default:
			normalized := validation.NormalizePhone(*req.PhoneIfNoAadhaar)
			phone = &normalized
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	aadhaar := model.Aadhaar{PhotoURL: strings.TrimSpace(req.Aadhaar.PhotoURL), Status: req.Aadhaar.Status}
	p, err = s.repo.UpsertAadhaar(ctx, userID, aadhaar, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to save aadhaar section: %w", err)
	}
	if p == nil {
		return nil, ErrAlreadySubmitted
	}
	return p, nil
}

func (s *profileService) SubmitStep2(ctx context.Context, userID uuid.UUID, req model.Step2Request) (p *model.VolunteerProfile, err error) {
	defer func() { metrics.RecordProfileStep("step2", err) }()

	errs := validation.Struct(req)
	point := validation.PointFromLngLat("location.coordinates", req.Location.Coordinates, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p, err = s.repo.UpdateLocation(ctx, userID, point, trimmedOrNil(req.Location.Address))
	if err != nil {
		return nil, fmt.Errorf("failed to save location section: %w", err)
	}
	if p == nil {
		return nil, s.explainMiss(ctx, userID)
	}
	return p, nil
}

func (s *profileService) SubmitStep3(ctx context.Context, userID uuid.UUID, req model.Step3Request) (p *model.VolunteerProfile, err error) {
	defer func() { metrics.RecordProfileStep("step3", err) }()

	description := strings.TrimSpace(req.Description)
	errs := &validation.Errors{}
	switch n := utf8.RuneCountInString(description); {
	case n == 0:
		errs.Add("description", "is required")
	case n < minDescriptionLen:
		errs.Add("description", fmt.Sprintf("must be at least %d characters", minDescriptionLen))
	case n > maxDescriptionLen:
		errs.Add("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p, err = s.repo.UpdateDescription(ctx, userID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to save description section: %w", err)
	}
	if p == nil {
		return nil, s.explainMiss(ctx, userID)
	}
	return p, nil
}

// Submit flips is_complete exactly once. The store performs it as a conditional
// update, so a concurrent duplicate submit loses with ErrAlreadySubmitted.
func (s *profileService) Submit(ctx context.Context, userID uuid.UUID) (p *model.VolunteerProfile, err error) {
	defer func() { metrics.RecordProfileStep("submit", err) }()

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for submission: %w", err)
	}
	if existing == nil {
		return nil, ErrProfileNotFound
	}
	if existing.IsComplete {
		return nil, ErrAlreadySubmitted
	}
	if missing := MissingSections(existing); len(missing) > 0 {
		return nil, incompleteError(missing)
	}

	p, err = s.repo.MarkSubmitted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit profile: %w", err)
	}
	if p == nil {
		return nil, ErrAlreadySubmitted
	}
	return p, nil
}

// explainMiss tells why a step update matched no row
func (s *profileService) explainMiss(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if existing == nil {
		return ErrStep1Required
	}
	if existing.IsComplete {
		return ErrAlreadySubmitted
	}
	return fmt.Errorf("profile %s changed concurrently, retry the step", userID)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
