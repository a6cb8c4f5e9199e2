package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/repository"

	"github.com/google/uuid"
)

// In-memory stand-ins that follow the same row semantics as the pgx repositories.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) add(email, role string, createdAt time.Time) model.User {
	u := model.User{ID: uuid.New(), Email: email, Role: role, IsActive: true, CreatedAt: createdAt}
	r.users[u.ID] = &u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) ListVolunteers(ctx context.Context) ([]model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleVolunteer {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.VolunteerProfile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*model.VolunteerProfile{}}
}

func (r *fakeProfileRepo) copyOf(p *model.VolunteerProfile) *model.VolunteerProfile {
	c := *p
	return &c
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if p, ok := r.profiles[userID]; ok {
		return r.copyOf(p), nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) UpsertAadhaar(ctx context.Context, userID uuid.UUID, aadhaar model.Aadhaar, phone *string) (*model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[userID]
	if !ok {
		p = &model.VolunteerProfile{UserID: userID, CreatedAt: time.Now()}
		r.profiles[userID] = p
	} else if p.IsComplete {
		return nil, nil
	}
	a := aadhaar
	p.Aadhaar = &a
	p.PhoneIfNoAadhaar = phone
	p.UpdatedAt = time.Now()
	return r.copyOf(p), nil
}

func (r *fakeProfileRepo) UpdateLocation(ctx context.Context, userID uuid.UUID, point model.GeoPoint, address *string) (*model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok || p.IsComplete {
		return nil, nil
	}
	p.Location = &model.ProfileLocation{Type: "Point", Coordinates: model.LngLat(point), Address: address}
	return r.copyOf(p), nil
}

func (r *fakeProfileRepo) UpdateDescription(ctx context.Context, userID uuid.UUID, description string) (*model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok || p.IsComplete {
		return nil, nil
	}
	d := description
	p.Description = &d
	return r.copyOf(p), nil
}

func (r *fakeProfileRepo) MarkSubmitted(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok || p.IsComplete || !IsReadyForSubmission(p) {
		return nil, nil
	}
	now := time.Now()
	p.IsComplete = true
	p.SubmittedAt = &now
	return r.copyOf(p), nil
}

func (r *fakeProfileRepo) ListAll(ctx context.Context) ([]model.VolunteerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.VolunteerProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[uuid.UUID]*model.Survey
	emails  map[uuid.UUID]string
	err     error
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: map[uuid.UUID]*model.Survey{}, emails: map[uuid.UUID]string{}}
}

func (r *fakeSurveyRepo) Create(ctx context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	c := *s
	r.surveys[s.ID] = &c
	return nil
}

func (r *fakeSurveyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	if s, ok := r.surveys[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *fakeSurveyRepo) sorted(keep func(model.Survey) bool) []model.Survey {
	out := []model.Survey{}
	for _, s := range r.surveys {
		if keep(*s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SurveyDate.After(out[j].SurveyDate) })
	return out
}

func (r *fakeSurveyRepo) FindByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, error) {
	return r.sorted(func(s model.Survey) bool { return s.VolunteerID == volunteerID }), nil
}

func (r *fakeSurveyRepo) CountByVolunteer(ctx context.Context, volunteerID uuid.UUID) (int, error) {
	surveys, _ := r.FindByVolunteer(ctx, volunteerID)
	return len(surveys), nil
}

func (r *fakeSurveyRepo) Update(ctx context.Context, s *model.Survey) error {
	if _, ok := r.surveys[s.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *s
	r.surveys[s.ID] = &c
	return nil
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.surveys[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.surveys, id)
	return nil
}

func (r *fakeSurveyRepo) FindAll(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error) {
	out := []model.SurveyWithVolunteer{}
	for _, s := range r.sorted(func(s model.Survey) bool {
		return filters.VolunteerID == nil || s.VolunteerID == *filters.VolunteerID
	}) {
		out = append(out, model.SurveyWithVolunteer{Survey: s, VolunteerEmail: r.emails[s.VolunteerID]})
	}
	return out, nil
}

func (r *fakeSurveyRepo) ListSurveyDates(ctx context.Context) ([]time.Time, error) {
	if r.err != nil {
		return nil, r.err
	}
	var dates []time.Time
	for _, s := range r.surveys {
		dates = append(dates, s.SurveyDate)
	}
	return dates, nil
}

func (r *fakeSurveyRepo) StatsByVolunteer(ctx context.Context) ([]model.VolunteerSurveyStat, error) {
	byVolunteer := map[uuid.UUID]*model.VolunteerSurveyStat{}
	for _, s := range r.surveys {
		st, ok := byVolunteer[s.VolunteerID]
		if !ok {
			st = &model.VolunteerSurveyStat{VolunteerID: s.VolunteerID}
			byVolunteer[s.VolunteerID] = st
		}
		st.Count++
		if st.LastSurveyDate == nil || s.SurveyDate.After(*st.LastSurveyDate) {
			d := s.SurveyDate
			st.LastSurveyDate = &d
		}
	}
	var out []model.VolunteerSurveyStat
	for _, st := range byVolunteer {
		out = append(out, *st)
	}
	return out, nil
}
