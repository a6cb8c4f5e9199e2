package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/repository"

	"github.com/google/uuid"
)

const recentSubmissionsLimit = 5

// AdminService computes read-only statistics. Nothing is cached: every call
// rescans the user, profile and survey stores.
type AdminService interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
	ListVolunteers(ctx context.Context) ([]model.VolunteerSummary, error)
	GetVolunteerDetail(ctx context.Context, volunteerID uuid.UUID) (*model.VolunteerDetail, error)
}

type adminService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	surveys  repository.SurveyRepository
	now      func() time.Time
}

// NewAdminService creates a new AdminService
func NewAdminService(users repository.UserRepository, profiles repository.ProfileRepository, surveys repository.SurveyRepository) AdminService {
	return &adminService{users: users, profiles: profiles, surveys: surveys, now: time.Now}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	volunteers, err := s.users.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers for stats: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, err
	}
	dates, err := s.surveys.ListSurveyDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey dates for stats: %w", err)
	}

	stats := &model.DashboardStats{
		TotalVolunteers:   len(volunteers),
		TotalSurveys:      len(dates),
		RecentSubmissions: []model.RecentSubmission{},
	}

	for _, v := range volunteers {
		p := profiles[v.ID]
		if HasAadhaarAndLocation(p) {
			stats.CompleteProfiles++
		}
		if p == nil || p.Aadhaar == nil {
			continue
		}
		switch p.Aadhaar.Status {
		case model.AadhaarStatusYes:
			stats.AadhaarStats.HaveAadhaar++
		case model.AadhaarStatusNo:
			stats.AadhaarStats.NoAadhaar++
		case model.AadhaarStatusUnknown:
			stats.AadhaarStats.Unknown++
		}
	}
	stats.IncompleteProfiles = stats.TotalVolunteers - stats.CompleteProfiles

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	for _, d := range dates {
		local := d.In(now.Location())
		if local.Year() == now.Year() && local.Month() == now.Month() {
			stats.SurveysThisMonth++
		}
		if !d.Before(weekAgo) {
			stats.SurveysThisWeek++
		}
	}

	recent := make([]model.User, len(volunteers))
	copy(recent, volunteers)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentSubmissionsLimit {
		recent = recent[:recentSubmissionsLimit]
	}
	for _, v := range recent {
		status := model.SubmissionIncomplete
		if profiles[v.ID] != nil {
			status = model.SubmissionComplete
		}
		stats.RecentSubmissions = append(stats.RecentSubmissions, model.RecentSubmission{
			ID:        v.ID,
			Email:     v.Email,
			CreatedAt: v.CreatedAt,
			Status:    status,
		})
	}

	return stats, nil
}

// ListVolunteers joins every volunteer with their profile and survey activity
func (s *adminService) ListVolunteers(ctx context.Context) ([]model.VolunteerSummary, error) {
	volunteers, err := s.users.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	profiles, err := s.profileIndex(ctx)
	if err != nil {
		return nil, err
	}
	surveyStats, err := s.surveys.StatsByVolunteer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey stats: %w", err)
	}
	byVolunteer := make(map[uuid.UUID]model.VolunteerSurveyStat, len(surveyStats))
	for _, st := range surveyStats {
		byVolunteer[st.VolunteerID] = st
	}

	summaries := make([]model.VolunteerSummary, 0, len(volunteers))
	for _, v := range volunteers {
		st := byVolunteer[v.ID]
		summaries = append(summaries, model.VolunteerSummary{
			User:           v,
			Profile:        profiles[v.ID],
			SurveyCount:    st.Count,
			LastSurveyDate: st.LastSurveyDate,
		})
	}
	return summaries, nil
}

func (s *adminService) GetVolunteerDetail(ctx context.Context, volunteerID uuid.UUID) (*model.VolunteerDetail, error) {
	user, err := s.users.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	if user == nil || user.Role != model.RoleVolunteer {
		return nil, ErrVolunteerNotFound
	}
	profile, err := s.profiles.FindByUserID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteer profile: %w", err)
	}
	surveys, err := s.surveys.FindByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteer surveys: %w", err)
	}
	if surveys == nil {
		surveys = []model.Survey{}
	}
	return &model.VolunteerDetail{
		User:        *user,
		Profile:     profile,
		Surveys:     surveys,
		SurveyCount: len(surveys),
	}, nil
}

func (s *adminService) profileIndex(ctx context.Context) (map[uuid.UUID]*model.VolunteerProfile, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	index := make(map[uuid.UUID]*model.VolunteerProfile, len(profiles))
	for i := range profiles {
		index[profiles[i].UserID] = &profiles[i]
	}
	return index, nil
}
