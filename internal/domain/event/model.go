package event

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date form events carry ("2025-11-15").
const DateLayout = "2006-01-02"

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("event title cannot be empty")
	ErrEmptyDescription = errors.New("event description cannot be empty")
	ErrInvalidDate      = errors.New("event date must be YYYY-MM-DD")
)

// Event is a dated calendar entry. ClubID 0 means a general event visible
// to all users; otherwise the event belongs to one club.
type Event struct {
	ID          string
	ClubID      int64
	Title       string
	Date        string // ISO calendar date, YYYY-MM-DD
	Description string
	CreatedAt   time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// IsGeneral returns true if the event belongs to the general scope.
// INVARIANT: Event fields are not mutated
func (e *Event) IsGeneral() bool {
	return e.ClubID == 0
}

// Day parses the event date.
// PRE: Date has been validated
// POST: returns the calendar day, or the zero time on a malformed date
func (e *Event) Day() time.Time {
	t, _ := time.Parse(DateLayout, e.Date)
	return t
}
