package repository

import (
	"context"
	"errors"
	"fmt"

	"volunteer_platform/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `user_id, aadhaar_photo_url, aadhaar_status, phone_if_no_aadhaar,
       location_latitude, location_longitude, location_address, description,
       is_complete, submitted_at, created_at, updated_at`

// submissionPredicate mirrors the workflow's submission gate so the final
// transition is a single conditional update.
const submissionPredicate = `aadhaar_status IN ('yes', 'no', 'unknown')
  AND COALESCE(aadhaar_photo_url, '') <> ''
  AND (aadhaar_status <> 'no' OR char_length(phone_if_no_aadhaar) BETWEEN 10 AND 15)
  AND location_latitude BETWEEN -90 AND 90
  AND location_longitude BETWEEN -180 AND 180
  AND char_length(description) BETWEEN 10 AND 1000`

// ProfileRepository defines operations on volunteer_profiles. Mutations that match
// no row return (nil, nil); the caller decides which state made them miss.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error)
	UpsertAadhaar(ctx context.Context, userID uuid.UUID, aadhaar model.Aadhaar, phone *string) (*model.VolunteerProfile, error)
	UpdateLocation(ctx context.Context, userID uuid.UUID, point model.GeoPoint, address *string) (*model.VolunteerProfile, error)
	UpdateDescription(ctx context.Context, userID uuid.UUID, description string) (*model.VolunteerProfile, error)
	MarkSubmitted(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error)
	ListAll(ctx context.Context) ([]model.VolunteerProfile, error)
}

type profileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DBTX) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error) {
	sql := `SELECT ` + profileColumns + ` FROM volunteer_profiles WHERE user_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, sql, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return p, nil
}

// UpsertAadhaar creates the profile row or overwrites its aadhaar section. A submitted
// profile is left untouched and (nil, nil) is returned.
func (r *profileRepository) UpsertAadhaar(ctx context.Context, userID uuid.UUID, aadhaar model.Aadhaar, phone *string) (*model.VolunteerProfile, error) {
	sql := `INSERT INTO volunteer_profiles (user_id, aadhaar_photo_url, aadhaar_status, phone_if_no_aadhaar)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (user_id) DO UPDATE
            SET aadhaar_photo_url = EXCLUDED.aadhaar_photo_url,
                aadhaar_status = EXCLUDED.aadhaar_status,
                phone_if_no_aadhaar = EXCLUDED.phone_if_no_aadhaar,
                updated_at = NOW()
            WHERE volunteer_profiles.is_complete = FALSE
            RETURNING ` + profileColumns
	p, err := scanProfile(r.db.QueryRow(ctx, sql, userID, nullIfEmpty(aadhaar.PhotoURL), aadhaar.Status, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to upsert aadhaar section: %w", err)
	}
	return p, nil
}

func (r *profileRepository) UpdateLocation(ctx context.Context, userID uuid.UUID, point model.GeoPoint, address *string) (*model.VolunteerProfile, error) {
	sql := `UPDATE volunteer_profiles
            SET location_latitude = $2, location_longitude = $3, location_address = $4, updated_at = NOW()
            WHERE user_id = $1 AND is_complete = FALSE
            RETURNING ` + profileColumns
	p, err := scanProfile(r.db.QueryRow(ctx, sql, userID, point.Latitude, point.Longitude, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update location section: %w", err)
	}
	return p, nil
}

func (r *profileRepository) UpdateDescription(ctx context.Context, userID uuid.UUID, description string) (*model.VolunteerProfile, error) {
	sql := `UPDATE volunteer_profiles
            SET description = $2, updated_at = NOW()
            WHERE user_id = $1 AND is_complete = FALSE
            RETURNING ` + profileColumns
	p, err := scanProfile(r.db.QueryRow(ctx, sql, userID, description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update description section: %w", err)
	}
	return p, nil
}

// MarkSubmitted performs the one-way completion transition. It only matches a profile
// that is not yet complete and satisfies the submission predicate.
func (r *profileRepository) MarkSubmitted(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error) {
	sql := `UPDATE volunteer_profiles
            SET is_complete = TRUE, submitted_at = NOW(), updated_at = NOW()
            WHERE user_id = $1 AND is_complete = FALSE AND ` + submissionPredicate + `
            RETURNING ` + profileColumns
	p, err := scanProfile(r.db.QueryRow(ctx, sql, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to submit profile: %w", err)
	}
	return p, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]model.VolunteerProfile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM volunteer_profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.VolunteerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func scanProfile(row pgx.Row) (*model.VolunteerProfile, error) {
	var (
		p             model.VolunteerProfile
		photoURL      *string
		aadhaarStatus *string
		lat, lng      *float64
		address       *string
	)
	err := row.Scan(
		&p.UserID, &photoURL, &aadhaarStatus, &p.PhoneIfNoAadhaar,
		&lat, &lng, &address, &p.Description,
		&p.IsComplete, &p.SubmittedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if aadhaarStatus != nil {
		p.Aadhaar = &model.Aadhaar{Status: *aadhaarStatus}
		if photoURL != nil {
			p.Aadhaar.PhotoURL = *photoURL
		}
	}
	if lat != nil && lng != nil {
		p.Location = &model.ProfileLocation{
			Type:        "Point",
			Coordinates: model.LngLat{Latitude: *lat, Longitude: *lng},
			Address:     address,
		}
	}
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
