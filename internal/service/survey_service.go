package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"volunteer_platform/internal/metrics"
	"volunteer_platform/internal/model"
	"volunteer_platform/internal/repository"
	"volunteer_platform/internal/validation"

	"github.com/google/uuid"
)

// SurveyService defines operations for field surveys
type SurveyService interface {
	CreateSurvey(ctx context.Context, volunteerID uuid.UUID, req model.CreateSurveyRequest) (*model.Survey, error)
	GetVolunteerSurveys(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, int, error)
	GetSurveyByID(ctx context.Context, surveyID uuid.UUID, requester model.Principal) (*model.Survey, error)
	UpdateSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal, req model.UpdateSurveyRequest) (*model.Survey, error)
	DeleteSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal) error

	// Admin methods
	GetAllSurveysAdmin(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error)
	ExportSurveysCSVAdmin(ctx context.Context, filters model.SurveyFilters) (*bytes.Buffer, error)
}

type surveyService struct {
	repo  repository.SurveyRepository
	now   func() time.Time
	newID func() uuid.UUID
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(repo repository.SurveyRepository) SurveyService {
	return &surveyService{repo: repo, now: time.Now, newID: uuid.New}
}

// CreateSurvey records a new observation. Identical payloads create distinct surveys.
func (s *surveyService) CreateSurvey(ctx context.Context, volunteerID uuid.UUID, req model.CreateSurveyRequest) (*model.Survey, error) {
	errs := validation.Struct(req)
	point := validation.PointFromLatLng("location_coordinates", req.LocationCoordinates, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	surveyDate := now
	if req.SurveyDate != nil && !req.SurveyDate.IsZero() {
		surveyDate = *req.SurveyDate
	}

	survey := &model.Survey{
		ID:              s.newID(),
		VolunteerID:     volunteerID,
		BeggarName:      req.BeggarName,
		BeggarAge:       req.BeggarAge,
		BeggarGender:    req.BeggarGender,
		BeggarPhotoURL:  req.BeggarPhotoURL,
		Location:        model.LatLng(point),
		LocationAddress: req.LocationAddress,
		SurveyNotes:     req.SurveyNotes,
		SurveyDate:      surveyDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey in repo: %w", err)
	}
	metrics.RecordSurvey("create")
	return survey, nil
}

// GetVolunteerSurveys returns the volunteer's surveys, newest survey_date first, and their count
func (s *surveyService) GetVolunteerSurveys(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, int, error) {
	surveys, err := s.repo.FindByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get volunteer surveys from repo: %w", err)
	}
	count, err := s.repo.CountByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count volunteer surveys: %w", err)
	}
	return surveys, count, nil
}

func (s *surveyService) GetSurveyByID(ctx context.Context, surveyID uuid.UUID, requester model.Principal) (*model.Survey, error) {
	return s.loadOwned(ctx, surveyID, requester)
}

func (s *surveyService) UpdateSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal, req model.UpdateSurveyRequest) (*model.Survey, error) {
	existing, err := s.loadOwned(ctx, surveyID, requester)
	if err != nil {
		return nil, err
	}

	errs := validation.Struct(req)
	var point model.GeoPoint
	if req.LocationCoordinates != nil {
		point = validation.PointFromLatLng("location_coordinates", req.LocationCoordinates, errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	// Apply updates
	if req.BeggarName != nil {
		existing.BeggarName = req.BeggarName
	}
	if req.BeggarAge != nil {
		existing.BeggarAge = req.BeggarAge
	}
	if req.BeggarGender != nil {
		existing.BeggarGender = req.BeggarGender
	}
	if req.BeggarPhotoURL != nil {
		existing.BeggarPhotoURL = req.BeggarPhotoURL
	}
	if req.LocationCoordinates != nil {
		existing.Location = model.LatLng(point)
	}
	if req.LocationAddress != nil {
		existing.LocationAddress = req.LocationAddress
	}
	if req.SurveyNotes != nil {
		existing.SurveyNotes = req.SurveyNotes
	}
	if req.SurveyDate != nil && !req.SurveyDate.IsZero() {
		existing.SurveyDate = *req.SurveyDate
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to update survey in repo: %w", err)
	}
	metrics.RecordSurvey("update")
	return existing, nil
}

func (s *surveyService) DeleteSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal) error {
	if _, err := s.loadOwned(ctx, surveyID, requester); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, surveyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return fmt.Errorf("failed to delete survey in repo: %w", err)
	}
	metrics.RecordSurvey("delete")
	return nil
}

// loadOwned fetches a survey and enforces that only its author or an admin may touch it
func (s *surveyService) loadOwned(ctx context.Context, surveyID uuid.UUID, requester model.Principal) (*model.Survey, error) {
	survey, err := s.repo.FindByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find survey by ID: %w", err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if !requester.IsAdmin() && survey.VolunteerID != requester.UserID {
		return nil, ErrForbidden
	}
	return survey, nil
}

// --- Admin Methods ---

func (s *surveyService) GetAllSurveysAdmin(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error) {
	surveys, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get all surveys for admin: %w", err)
	}
	if filters.Near == nil {
		return surveys, nil
	}

	nearby := make([]model.SurveyWithVolunteer, 0, len(surveys))
	for _, sv := range surveys {
		if validation.DistanceKm(*filters.Near, sv.Point()) <= filters.RadiusKm {
			nearby = append(nearby, sv)
		}
	}
	return nearby, nil
}

func (s *surveyService) ExportSurveysCSVAdmin(ctx context.Context, filters model.SurveyFilters) (*bytes.Buffer, error) {
	surveys, err := s.GetAllSurveysAdmin(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch surveys for CSV export: %w", err)
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := []string{"ID", "VolunteerID", "VolunteerEmail", "BeggarName", "BeggarAge", "BeggarGender",
		"Latitude", "Longitude", "LocationAddress", "SurveyNotes", "SurveyDate", "CreatedAt"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, sv := range surveys {
		age := ""
		if sv.BeggarAge != nil {
			age = strconv.Itoa(*sv.BeggarAge)
		}
		row := []string{
			sv.ID.String(),
			sv.VolunteerID.String(),
			sv.VolunteerEmail,
			deref(sv.BeggarName),
			age,
			deref(sv.BeggarGender),
			strconv.FormatFloat(sv.Location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(sv.Location.Longitude, 'f', -1, 64),
			deref(sv.LocationAddress),
			deref(sv.SurveyNotes),
			sv.SurveyDate.Format(time.RFC3339),
			sv.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return buffer, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
