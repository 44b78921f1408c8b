package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/dvernon0786/reviewcraft-api/internal/database"
)

// Repository persists per-user preferences and review platform links.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetPreferences loads the user's saved preferences, or the defaults when
// the user has never saved any.
func (r *Repository) GetPreferences(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	dbPrefs := new(database.UserPreferences)

	err := r.db.NewSelect().
		Model(dbPrefs).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultPreferences(userID), nil
		}
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	return fromDBPreferences(dbPrefs), nil
}

// UpsertPreferences saves the user's preferences, creating the row on
// first save.
func (r *Repository) UpsertPreferences(ctx context.Context, prefs *Preferences) (*Preferences, error) {
	dbPrefs := toDBPreferences(prefs)
	dbPrefs.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(dbPrefs).
		On("CONFLICT (user_id) DO UPDATE").
		Set("business_name = EXCLUDED.business_name").
		Set("business_type = EXCLUDED.business_type").
		Set("review_platforms = EXCLUDED.review_platforms").
		Set("default_email_template = EXCLUDED.default_email_template").
		Set("email_signature = EXCLUDED.email_signature").
		Set("timezone = EXCLUDED.timezone").
		Set("language = EXCLUDED.language").
		Set("notifications = EXCLUDED.notifications").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save user preferences: %w", err)
	}

	return fromDBPreferences(dbPrefs), nil
}

// GetPlatformURLs loads the user's review platform links. Users without a
// saved row get an empty set.
func (r *Repository) GetPlatformURLs(ctx context.Context, userID uuid.UUID) (*PlatformURLs, error) {
	dbURLs := new(database.ReviewPlatformURLs)

	err := r.db.NewSelect().
		Model(dbURLs).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &PlatformURLs{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get review platform urls: %w", err)
	}

	return fromDBPlatformURLs(dbURLs), nil
}

// UpsertPlatformURLs saves the user's review platform links, creating the
// row on first save.
func (r *Repository) UpsertPlatformURLs(ctx context.Context, urls *PlatformURLs) (*PlatformURLs, error) {
	dbURLs := toDBPlatformURLs(urls)
	dbURLs.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(dbURLs).
		On("CONFLICT (user_id) DO UPDATE").
		Set("google = EXCLUDED.google").
		Set("yelp = EXCLUDED.yelp").
		Set("facebook = EXCLUDED.facebook").
		Set("tripadvisor = EXCLUDED.tripadvisor").
		Set("trustpilot = EXCLUDED.trustpilot").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save review platform urls: %w", err)
	}

	return fromDBPlatformURLs(dbURLs), nil
}

func toDBPreferences(p *Preferences) *database.UserPreferences {
	platforms := p.ReviewPlatforms
	if platforms == nil {
		platforms = []string{}
	}

	return &database.UserPreferences{
		UserID:               p.UserID,
		BusinessName:         p.BusinessName,
		BusinessType:         p.BusinessType,
		ReviewPlatforms:      platforms,
		DefaultEmailTemplate: p.DefaultEmailTemplate,
		EmailSignature:       p.EmailSignature,
		Timezone:             p.Timezone,
		Language:             p.Language,
		Notifications:        p.Notifications,
		CreatedAt:            p.CreatedAt,
	}
}

func fromDBPreferences(p *database.UserPreferences) *Preferences {
	platforms := p.ReviewPlatforms
	if platforms == nil {
		platforms = []string{}
	}

	return &Preferences{
		UserID:               p.UserID,
		BusinessName:         p.BusinessName,
		BusinessType:         p.BusinessType,
		ReviewPlatforms:      platforms,
		DefaultEmailTemplate: p.DefaultEmailTemplate,
		EmailSignature:       p.EmailSignature,
		Timezone:             p.Timezone,
		Language:             p.Language,
		Notifications:        p.Notifications,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toDBPlatformURLs(u *PlatformURLs) *database.ReviewPlatformURLs {
	return &database.ReviewPlatformURLs{
		UserID:      u.UserID,
		Google:      u.Google,
		Yelp:        u.Yelp,
		Facebook:    u.Facebook,
		Tripadvisor: u.Tripadvisor,
		Trustpilot:  u.Trustpilot,
		CreatedAt:   u.CreatedAt,
	}
}

func fromDBPlatformURLs(u *database.ReviewPlatformURLs) *PlatformURLs {
	return &PlatformURLs{
		UserID:      u.UserID,
		Google:      u.Google,
		Yelp:        u.Yelp,
		Facebook:    u.Facebook,
		Tripadvisor: u.Tripadvisor,
		Trustpilot:  u.Trustpilot,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
