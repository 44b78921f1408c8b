package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates all application tables if they don't exist yet.
// Runs at startup; the unique constraint on users.email is the atomic
// guard against concurrent duplicate registrations.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Contact)(nil),
		(*Campaign)(nil),
		(*EmailTemplate)(nil),
		(*EmailLog)(nil),
		(*UserPreferences)(nil),
		(*ReviewPlatformURLs)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	if _, err := db.NewCreateIndex().
		Model((*User)(nil)).
		Index("idx_users_email").
		Column("email").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	return nil
}
