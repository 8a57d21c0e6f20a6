package announcement

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date form announcements carry ("2025-10-20").
const DateLayout = "2006-01-02"

// MaxTextLength caps the announcement body.
const MaxTextLength = 2000

// Domain errors
var (
	ErrEmptyText   = errors.New("announcement text cannot be empty")
	ErrInvalidDate = errors.New("announcement date must be YYYY-MM-DD")
)

// Announcement is a dated note. ClubID 0 means general scope: visible to
// every user rather than owned by one club. Text supports Markdown.
type Announcement struct {
	ID        string
	ClubID    int64
	Date      string // ISO calendar date, YYYY-MM-DD
	Text      string // Markdown content
	CreatedAt time.Time
}

// Validate checks if the Announcement has valid data.
// PRE: Announcement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return ErrEmptyText
	}
	if len(a.Text) > MaxTextLength {
		return errors.New("announcement text cannot exceed 2000 characters")
	}
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// IsGeneral returns true if the announcement belongs to the general scope.
// INVARIANT: Announcement fields are not mutated
func (a *Announcement) IsGeneral() bool {
	return a.ClubID == 0
}
