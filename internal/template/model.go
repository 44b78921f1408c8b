package template

import (
	"time"

	"github.com/google/uuid"
)

// Template is a reusable outbound email template.
type Template struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IsDefault bool      `json:"isDefault"`
	MergeTags []string  `json:"mergeTags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
