package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteer_platform/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const surveyColumns = `s.id, s.volunteer_id, s.beggar_name, s.beggar_age, s.beggar_gender, s.beggar_photo_url,
       s.latitude, s.longitude, s.location_address, s.survey_notes, s.survey_date, s.created_at, s.updated_at`

// SurveyRepository defines operations for survey data
type SurveyRepository interface {
	Create(ctx context.Context, survey *model.Survey) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Survey, error)
	FindByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, error)
	CountByVolunteer(ctx context.Context, volunteerID uuid.UUID) (int, error)
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error)
	ListSurveyDates(ctx context.Context) ([]time.Time, error)
	StatsByVolunteer(ctx context.Context) ([]model.VolunteerSurveyStat, error)
}

type surveyRepository struct {
	db DBTX
}

// NewSurveyRepository creates a new SurveyRepository
func NewSurveyRepository(db DBTX) SurveyRepository {
	return &surveyRepository{db: db}
}

// Create inserts a new survey into the database
func (r *surveyRepository) Create(ctx context.Context, s *model.Survey) error {
	sql := `INSERT INTO surveys (id, volunteer_id, beggar_name, beggar_age, beggar_gender, beggar_photo_url,
                                 latitude, longitude, location_address, survey_notes, survey_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		s.ID, s.VolunteerID, s.BeggarName, s.BeggarAge, s.BeggarGender, s.BeggarPhotoURL,
		s.Location.Latitude, s.Location.Longitude, s.LocationAddress, s.SurveyNotes, s.SurveyDate,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	return nil
}

// FindByID retrieves a survey by its ID, (nil, nil) when absent
func (r *surveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	sql := `SELECT ` + surveyColumns + ` FROM surveys s WHERE s.id = $1`
	s, err := scanSurvey(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find survey by ID: %w", err)
	}
	return s, nil
}

// FindByVolunteer lists a volunteer's surveys, most recent survey_date first
func (r *surveyRepository) FindByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, error) {
	sql := `SELECT ` + surveyColumns + ` FROM surveys s WHERE s.volunteer_id = $1
            ORDER BY s.survey_date DESC, s.created_at DESC`
	rows, err := r.db.Query(ctx, sql, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query surveys by volunteer: %w", err)
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey row: %w", err)
		}
		surveys = append(surveys, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey rows: %w", err)
	}
	return surveys, nil
}

func (r *surveyRepository) CountByVolunteer(ctx context.Context, volunteerID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM surveys WHERE volunteer_id = $1`, volunteerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count surveys: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable fields of a survey. volunteer_id is never changed.
func (r *surveyRepository) Update(ctx context.Context, s *model.Survey) error {
	sql := `UPDATE surveys
            SET beggar_name = $1, beggar_age = $2, beggar_gender = $3, beggar_photo_url = $4,
                latitude = $5, longitude = $6, location_address = $7, survey_notes = $8,
                survey_date = $9, updated_at = NOW()
            WHERE id = $10 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		s.BeggarName, s.BeggarAge, s.BeggarGender, s.BeggarPhotoURL,
		s.Location.Latitude, s.Location.Longitude, s.LocationAddress, s.SurveyNotes,
		s.SurveyDate, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update survey: %w", err)
	}
	return nil
}

// Delete removes a survey from the database
func (r *surveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll lists surveys joined with the author's email for admins
func (r *surveyRepository) FindAll(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + surveyColumns + `, u.email
                               FROM surveys s JOIN users u ON s.volunteer_id = u.id`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.VolunteerID != nil {
		conditions = append(conditions, fmt.Sprintf("s.volunteer_id = $%d", argCount))
		args = append(args, *filters.VolunteerID)
		argCount++
	}
	if filters.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.survey_date >= $%d", argCount))
		args = append(args, *filters.StartDate)
		argCount++
	}
	if filters.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.survey_date <= $%d", argCount))
		args = append(args, *filters.EndDate)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY s.survey_date DESC, s.created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query all surveys: %w", err)
	}
	defer rows.Close()

	surveys := []model.SurveyWithVolunteer{}
	for rows.Next() {
		var sv model.SurveyWithVolunteer
		var lat, lng float64
		s := &sv.Survey
		if err := rows.Scan(
			&s.ID, &s.VolunteerID, &s.BeggarName, &s.BeggarAge, &s.BeggarGender, &s.BeggarPhotoURL,
			&lat, &lng, &s.LocationAddress, &s.SurveyNotes, &s.SurveyDate, &s.CreatedAt, &s.UpdatedAt,
			&sv.VolunteerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan survey row for admin: %w", err)
		}
		s.Location = model.LatLng{Latitude: lat, Longitude: lng}
		surveys = append(surveys, sv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin survey rows: %w", err)
	}
	return surveys, nil
}

// ListSurveyDates returns the survey_date of every survey for in-process windowing
func (r *surveyRepository) ListSurveyDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT survey_date FROM surveys`)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan survey date: %w", err)
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey dates: %w", err)
	}
	return dates, nil
}

// StatsByVolunteer returns survey count and latest survey date per volunteer
func (r *surveyRepository) StatsByVolunteer(ctx context.Context) ([]model.VolunteerSurveyStat, error) {
	sql := `SELECT volunteer_id, COUNT(*), MAX(survey_date) FROM surveys GROUP BY volunteer_id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey stats by volunteer: %w", err)
	}
	defer rows.Close()

	var stats []model.VolunteerSurveyStat
	for rows.Next() {
		var st model.VolunteerSurveyStat
		if err := rows.Scan(&st.VolunteerID, &st.Count, &st.LastSurveyDate); err != nil {
			return nil, fmt.Errorf("failed to scan survey stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey stats: %w", err)
	}
	return stats, nil
}

func scanSurvey(row pgx.Row) (*model.Survey, error) {
	s := &model.Survey{}
	var lat, lng float64
	err := row.Scan(
		&s.ID, &s.VolunteerID, &s.BeggarName, &s.BeggarAge, &s.BeggarGender, &s.BeggarPhotoURL,
		&lat, &lng, &s.LocationAddress, &s.SurveyNotes, &s.SurveyDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Location = model.LatLng{Latitude: lat, Longitude: lng}
	return s, nil
}
