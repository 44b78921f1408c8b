package emaillog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/dvernon0786/reviewcraft-api/internal/database"
)

// Repository handles email log persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create records a sent or failed email for the user.
func (r *Repository) Create(ctx context.Context, log *EmailLog) (*EmailLog, error) {
	dbLog := &database.EmailLog{
		ID:              uuid.New(),
		UserID:          log.UserID,
		ContactID:       log.ContactID,
		CampaignID:      log.CampaignID,
		EmailTemplateID: log.EmailTemplateID,
		Status:          log.Status,
		SentAt:          time.Now(),
		BounceReason:    log.BounceReason,
		Subject:         log.Subject,
		Content:         log.Content,
	}

	if _, err := r.db.NewInsert().
		Model(dbLog).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create email log: %w", err)
	}

	return mapDBLogToModel(dbLog), nil
}

// ListByUser returns the user's email logs, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]EmailLog, error) {
	var dbLogs []database.EmailLog
	q := r.db.NewSelect().
		Model(&dbLogs).
		Where("user_id = ?", userID).
		Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}

	logs := make([]EmailLog, 0, len(dbLogs))
	for i := range dbLogs {
		logs = append(logs, *mapDBLogToModel(&dbLogs[i]))
	}
	return logs, nil
}

func mapDBLogToModel(dbl *database.EmailLog) *EmailLog {
	return &EmailLog{
		ID:              dbl.ID,
		UserID:          dbl.UserID,
		ContactID:       dbl.ContactID,
		CampaignID:      dbl.CampaignID,
		EmailTemplateID: dbl.EmailTemplateID,
		Status:          dbl.Status,
		SentAt:          dbl.SentAt,
		OpenedAt:        dbl.OpenedAt,
		ClickedAt:       dbl.ClickedAt,
		BounceReason:    dbl.BounceReason,
		Subject:         dbl.Subject,
		Content:         dbl.Content,
	}
}
