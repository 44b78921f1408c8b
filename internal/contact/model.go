package contact

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a customer a business owner can ask for a review.
type Contact struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"-"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Status       string     `json:"status"`
	Tags         []string   `json:"tags"`
	BusinessName *string    `json:"businessName,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	LastRequest  *time.Time `json:"lastRequest,omitempty"`
	ReviewStatus string     `json:"reviewStatus"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
