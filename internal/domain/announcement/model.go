package announcement

import (
	"errors"
	"time"

	"gymhub/internal/domain/user"
)

// Announcement statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Audience constants. AudienceAll targets every role.
const AudienceAll = "all"

// Severity presets used by the dashboard banner.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityUrgent  = "urgent"
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("announcement title cannot be empty")
	ErrEmptyContent    = errors.New("announcement content cannot be empty")
	ErrInvalidAudience = errors.New("announcement audience must be a role or 'all'")
	ErrInvalidStatus   = errors.New("announcement status must be one of: draft, published")
	ErrInvalidSeverity = errors.New("announcement severity must be one of: info, warning, urgent")
	ErrAlreadyLive     = errors.New("announcement is already published")
)

// ValidSeverities contains all valid severity values.
var ValidSeverities = []string{SeverityInfo, SeverityWarning, SeverityUrgent}

// Announcement is a role-targeted message shown in dashboard chrome.
// Content supports Markdown formatting; raw HTML is escaped at render time.
type Announcement struct {
	ID          string
	Audience    string // a role constant or "all"
	Status      string // draft, published
	Severity    string // info, warning, urgent
	Title       string
	Content     string // Markdown content
	CreatedBy   string // user ID of creator
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Announcement has valid data.
// PRE: Announcement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Announcement) Validate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.Content == "" {
		return ErrEmptyContent
	}
	if !isValidAudience(a.Audience) {
		return ErrInvalidAudience
	}
	if a.Status != StatusDraft && a.Status != StatusPublished {
		return ErrInvalidStatus
	}
	if a.Severity != "" && !isValidSeverity(a.Severity) {
		return ErrInvalidSeverity
	}
	return nil
}

// Publish transitions a draft to published.
// PRE: Status is draft
// POST: Status is published, PublishedAt is set
func (a *Announcement) Publish(now time.Time) error {
	if a.Status == StatusPublished {
		return ErrAlreadyLive
	}
	a.Status = StatusPublished
	a.PublishedAt = now
	return nil
}

// VisibleTo reports whether a published announcement targets the role.
// INVARIANT: Announcement fields are not mutated
func (a *Announcement) VisibleTo(role string) bool {
	if a.Status != StatusPublished {
		return false
	}
	return a.Audience == AudienceAll || a.Audience == role
}

func isValidAudience(audience string) bool {
	if audience == AudienceAll {
		return true
	}
	for _, r := range user.ValidRoles {
		if r == audience {
			return true
		}
	}
	return false
}

func isValidSeverity(severity string) bool {
	for _, s := range ValidSeverities {
		if s == severity {
			return true
		}
	}
	return false
}
