package club

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrEmptyName      = errors.New("club name cannot be empty")
	ErrAdminNotMember = errors.New("club admin must be a member of the club")
)

// Club holds state for the concept. Member identities and the club's
// announcement/event sequences live in their own relations; AdminID is the
// denormalized single-admin seat (0 = no admin).
type Club struct {
	ID          int64
	Name        string
	ImageURL    string
	Description string
	AdminID     int64
}

// Validate checks if the Club has valid data.
// PRE: Club struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("club name cannot exceed 100 characters")
	}
	if len(c.Description) > MaxDescriptionLength {
		return errors.New("club description cannot exceed 2000 characters")
	}
	return nil
}

// HasAdmin returns true if the club has an assigned admin.
// INVARIANT: Club fields are not mutated
func (c *Club) HasAdmin() bool {
	return c.AdminID != 0
}

// IsAdmin returns true if the given user id holds the club's admin seat.
// INVARIANT: Club fields are not mutated
func (c *Club) IsAdmin(userID int64) bool {
	return c.HasAdmin() && c.AdminID == userID
}

// ClearAdmin vacates the admin seat.
// POST: AdminID is 0
func (c *Club) ClearAdmin() {
	c.AdminID = 0
}
