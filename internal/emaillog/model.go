package emaillog

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog is one sent-email audit record.
type EmailLog struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"-"`
	ContactID       *uuid.UUID `json:"contactId,omitempty"`
	CampaignID      *uuid.UUID `json:"campaignId,omitempty"`
	EmailTemplateID *uuid.UUID `json:"emailTemplateId,omitempty"`
	Status          string     `json:"status"`
	SentAt          time.Time  `json:"sentAt"`
	OpenedAt        *time.Time `json:"openedAt,omitempty"`
	ClickedAt       *time.Time `json:"clickedAt,omitempty"`
	BounceReason    *string    `json:"bounceReason,omitempty"`
	Subject         string     `json:"subject"`
	Content         string     `json:"content"`
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)
