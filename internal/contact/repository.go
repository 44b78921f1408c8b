package contact

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

var ErrNotFound = errors.New("contact not found")

// Repository handles contact persistence. Every query is scoped to the
// owning user; callers cannot reach another user's rows.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new contact for the user
func (r *Repository) Create(ctx context.Context, c *Contact) (*Contact, error) {
	dbContact := &database.Contact{
		ID:           uuid.New(),
		UserID:       c.UserID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Website:      c.Website,
		Status:       c.Status,
		Tags:         c.Tags,
		BusinessName: c.BusinessName,
		Notes:        c.Notes,
		ReviewStatus: c.ReviewStatus,
	}

	if _, err := r.db.NewInsert().
		Model(dbContact).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return mapDBContactToModel(dbContact), nil
}

// ListByUser returns all of the user's contacts, newest first
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	var dbContacts []database.Contact
	if err := r.db.NewSelect().
		Model(&dbContacts).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]Contact, 0, len(dbContacts))
	for i := range dbContacts {
		contacts = append(contacts, *mapDBContactToModel(&dbContacts[i]))
	}
	return contacts, nil
}

// GetByID returns one of the user's contacts
func (r *Repository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Contact, error) {
	dbContact := new(database.Contact)
	err := r.db.NewSelect().
		Model(dbContact).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return mapDBContactToModel(dbContact), nil
}

// Update persists changed fields of the user's contact
func (r *Repository) Update(ctx context.Context, c *Contact) (*Contact, error) {
	dbContact := &database.Contact{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Website:      c.Website,
		Status:       c.Status,
		Tags:         c.Tags,
		BusinessName: c.BusinessName,
		Notes:        c.Notes,
		LastRequest:  c.LastRequest,
		ReviewStatus: c.ReviewStatus,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    time.Now(),
	}

	result, err := r.db.NewUpdate().
		Model(dbContact).
		WherePK().
		Where("user_id = ?", c.UserID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBContactToModel(dbContact), nil
}

// Delete removes one of the user's contacts
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Contact)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
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

func mapDBContactToModel(dbc *database.Contact) *Contact {
	return &Contact{
		ID:           dbc.ID,
		UserID:       dbc.UserID,
		Name:         dbc.Name,
		Email:        dbc.Email,
		Phone:        dbc.Phone,
		Website:      dbc.Website,
		Status:       dbc.Status,
		Tags:         dbc.Tags,
		BusinessName: dbc.BusinessName,
		Notes:        dbc.Notes,
		LastRequest:  dbc.LastRequest,
		ReviewStatus: dbc.ReviewStatus,
		CreatedAt:    dbc.CreatedAt,
		UpdatedAt:    dbc.UpdatedAt,
	}
}
