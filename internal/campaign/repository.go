package campaign

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

var ErrNotFound = errors.New("campaign not found")

// Repository handles campaign persistence, scoped by owning user.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Campaign) (*Campaign, error) {
	dbCampaign := toDBCampaign(c)
	dbCampaign.ID = uuid.New()

	if _, err := r.db.NewInsert().
		Model(dbCampaign).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return fromDBCampaign(dbCampaign), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Campaign, error) {
	var dbCampaigns []database.Campaign
	if err := r.db.NewSelect().
		Model(&dbCampaigns).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	campaigns := make([]Campaign, 0, len(dbCampaigns))
	for i := range dbCampaigns {
		campaigns = append(campaigns, *fromDBCampaign(&dbCampaigns[i]))
	}
	return campaigns, nil
}

func (r *Repository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Campaign, error) {
	dbCampaign := new(database.Campaign)
	err := r.db.NewSelect().
		Model(dbCampaign).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return fromDBCampaign(dbCampaign), nil
}

func (r *Repository) Update(ctx context.Context, c *Campaign) (*Campaign, error) {
	dbCampaign := toDBCampaign(c)
	dbCampaign.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(dbCampaign).
		WherePK().
		Where("user_id = ?", c.UserID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return fromDBCampaign(dbCampaign), nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Campaign)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func toDBCampaign(c *Campaign) *database.Campaign {
	return &database.Campaign{
		ID:               c.ID,
		UserID:           c.UserID,
		Name:             c.Name,
		Description:      c.Description,
		Status:           c.Status,
		Enrollments:      c.Enrollments,
		CompletionRate:   c.CompletionRate,
		BusinessName:     c.BusinessName,
		TargetPlatforms:  c.TargetPlatforms,
		EmailTemplate:    c.EmailTemplate,
		SubjectLine:      c.SubjectLine,
		SelectedContacts: c.SelectedContacts,
		Steps:            c.Steps,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func fromDBCampaign(dbc *database.Campaign) *Campaign {
	return &Campaign{
		ID:               dbc.ID,
		UserID:           dbc.UserID,
		Name:             dbc.Name,
		Description:      dbc.Description,
		Status:           dbc.Status,
		Enrollments:      dbc.Enrollments,
		CompletionRate:   dbc.CompletionRate,
		BusinessName:     dbc.BusinessName,
		TargetPlatforms:  dbc.TargetPlatforms,
		EmailTemplate:    dbc.EmailTemplate,
		SubjectLine:      dbc.SubjectLine,
		SelectedContacts: dbc.SelectedContacts,
		Steps:            dbc.Steps,
		CreatedAt:        dbc.CreatedAt,
		UpdatedAt:        dbc.UpdatedAt,
	}
}
