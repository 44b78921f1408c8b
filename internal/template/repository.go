package template

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

var ErrNotFound = errors.New("email template not found")

// Repository handles email template persistence, scoped by owning user.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Template) (*Template, error) {
	dbTemplate := toDBTemplate(t)
	dbTemplate.ID = uuid.New()

	if _, err := r.db.NewInsert().
		Model(dbTemplate).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create email template: %w", err)
	}

	return fromDBTemplate(dbTemplate), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Template, error) {
	var dbTemplates []database.EmailTemplate
	if err := r.db.NewSelect().
		Model(&dbTemplates).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list email templates: %w", err)
	}

	templates := make([]Template, 0, len(dbTemplates))
	for i := range dbTemplates {
		templates = append(templates, *fromDBTemplate(&dbTemplates[i]))
	}
	return templates, nil
}

func (r *Repository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Template, error) {
	dbTemplate := new(database.EmailTemplate)
	err := r.db.NewSelect().
		Model(dbTemplate).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email template: %w", err)
	}

	return fromDBTemplate(dbTemplate), nil
}

func (r *Repository) Update(ctx context.Context, t *Template) (*Template, error) {
	dbTemplate := toDBTemplate(t)
	dbTemplate.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(dbTemplate).
		WherePK().
		Where("user_id = ?", t.UserID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update email template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return fromDBTemplate(dbTemplate), nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.EmailTemplate)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete email template: %w", err)
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

func toDBTemplate(t *Template) *database.EmailTemplate {
	return &database.EmailTemplate{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Subject:   t.Subject,
		Content:   t.Content,
		Category:  t.Category,
		IsDefault: t.IsDefault,
		MergeTags: t.MergeTags,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromDBTemplate(dbt *database.EmailTemplate) *Template {
	return &Template{
		ID:        dbt.ID,
		UserID:    dbt.UserID,
		Name:      dbt.Name,
		Subject:   dbt.Subject,
		Content:   dbt.Content,
		Category:  dbt.Category,
		IsDefault: dbt.IsDefault,
		MergeTags: dbt.MergeTags,
		CreatedAt: dbt.CreatedAt,
		UpdatedAt: dbt.UpdatedAt,
	}
}
