package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for user accounts.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	Email        string     `bun:"email,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	FirstName    *string    `bun:"first_name"`
	LastName     *string    `bun:"last_name"`
	BusinessName *string    `bun:"business_name"`
	IsActive     bool       `bun:"is_active,notnull,default:true"`
	LastLogin    *time.Time `bun:"last_login"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Contact is the database model for review-request recipients.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:c"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	UserID       uuid.UUID  `bun:"user_id,type:uuid,notnull"`
	Name         string     `bun:"name,notnull"`
	Email        string     `bun:"email,notnull"`
	Phone        *string    `bun:"phone"`
	Website      *string    `bun:"website"`
	Status       string     `bun:"status,notnull,default:'active'"`
	Tags         []string   `bun:"tags,array"`
	BusinessName *string    `bun:"business_name"`
	Notes        *string    `bun:"notes"`
	LastRequest  *time.Time `bun:"last_request"`
	ReviewStatus string     `bun:"review_status,notnull,default:'none'"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Campaign is the database model for review-request campaigns.
type Campaign struct {
	bun.BaseModel `bun:"table:campaigns,alias:cp"`

	ID               uuid.UUID       `bun:"id,pk,type:uuid"`
	UserID           uuid.UUID       `bun:"user_id,type:uuid,notnull"`
	Name             string          `bun:"name,notnull"`
	Description      *string         `bun:"description"`
	Status           string          `bun:"status,notnull,default:'draft'"`
	Enrollments      int             `bun:"enrollments,notnull,default:0"`
	CompletionRate   float64         `bun:"completion_rate,notnull,default:0"`
	BusinessName     *string         `bun:"business_name"`
	TargetPlatforms  []string        `bun:"target_platforms,array"`
	EmailTemplate    *string         `bun:"email_template"`
	SubjectLine      *string         `bun:"subject_line"`
	SelectedContacts []string        `bun:"selected_contacts,array"`
	Steps            json.RawMessage `bun:"steps,type:jsonb"`
	CreatedAt        time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// EmailTemplate is the database model for reusable outbound email templates.
type EmailTemplate struct {
	bun.BaseModel `bun:"table:email_templates,alias:t"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull"`
	Name      string    `bun:"name,notnull"`
	Subject   string    `bun:"subject,notnull"`
	Content   string    `bun:"content,notnull"`
	Category  string    `bun:"category,notnull"`
	IsDefault bool      `bun:"is_default,notnull,default:false"`
	MergeTags []string  `bun:"merge_tags,array"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// EmailLog is the database model for sent-email audit records.
type EmailLog struct {
	bun.BaseModel `bun:"table:email_logs,alias:l"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	UserID          uuid.UUID  `bun:"user_id,type:uuid,notnull"`
	ContactID       *uuid.UUID `bun:"contact_id,type:uuid"`
	CampaignID      *uuid.UUID `bun:"campaign_id,type:uuid"`
	EmailTemplateID *uuid.UUID `bun:"email_template_id,type:uuid"`
	Status          string     `bun:"status,notnull"`
	SentAt          time.Time  `bun:"sent_at,nullzero,notnull,default:current_timestamp"`
	OpenedAt        *time.Time `bun:"opened_at"`
	ClickedAt       *time.Time `bun:"clicked_at"`
	BounceReason    *string    `bun:"bounce_reason"`
	Subject         string     `bun:"subject,notnull"`
	Content         string     `bun:"content,notnull"`
}

// UserPreferences is the database model for per-user settings. One row per user.
type UserPreferences struct {
	bun.BaseModel `bun:"table:user_preferences,alias:p"`

	UserID               uuid.UUID       `bun:"user_id,pk,type:uuid"`
	BusinessName         *string         `bun:"business_name"`
	BusinessType         *string         `bun:"business_type"`
	ReviewPlatforms      []string        `bun:"review_platforms,array"`
	DefaultEmailTemplate *uuid.UUID      `bun:"default_email_template,type:uuid"`
	EmailSignature       *string         `bun:"email_signature"`
	Timezone             string          `bun:"timezone,notnull,default:'UTC'"`
	Language             string          `bun:"language,notnull,default:'en'"`
	Notifications        json.RawMessage `bun:"notifications,type:jsonb"`
	CreatedAt            time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt            time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ReviewPlatformURLs holds each user's public review page links. One row per user.
type ReviewPlatformURLs struct {
	bun.BaseModel `bun:"table:review_platform_urls,alias:rp"`

	UserID      uuid.UUID `bun:"user_id,pk,type:uuid"`
	Google      *string   `bun:"google"`
	Yelp        *string   `bun:"yelp"`
	Facebook    *string   `bun:"facebook"`
	Tripadvisor *string   `bun:"tripadvisor"`
	Trustpilot  *string   `bun:"trustpilot"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
