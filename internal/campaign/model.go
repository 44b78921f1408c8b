package campaign

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Campaign groups review requests into a named outreach effort.
type Campaign struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"-"`
	Name             string          `json:"name"`
	Description      *string         `json:"description,omitempty"`
	Status           string          `json:"status"`
	Enrollments      int             `json:"enrollments"`
	CompletionRate   float64         `json:"completionRate"`
	BusinessName     *string         `json:"businessName,omitempty"`
	TargetPlatforms  []string        `json:"targetPlatforms"`
	EmailTemplate    *string         `json:"emailTemplate,omitempty"`
	SubjectLine      *string         `json:"subjectLine,omitempty"`
	SelectedContacts []string        `json:"selectedContacts"`
	Steps            json.RawMessage `json:"steps,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
