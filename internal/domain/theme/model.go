package theme

import "errors"

// Theme values
const (
	Light = "light"
	Dark  = "dark"
)

// Default is the theme used when a user has no saved preference.
const Default = Dark

// ErrInvalidTheme is returned for any value other than "light" or "dark".
var ErrInvalidTheme = errors.New("theme must be 'light' or 'dark'")

// Preference is one user's saved theme choice.
type Preference struct {
	OwnerRef string // canonical identity string of the owner
	Theme    string
}

// Validate checks if the Preference has valid data.
// POST: Returns nil if valid, error otherwise
func (p *Preference) Validate() error {
	if p.Theme != Light && p.Theme != Dark {
		return ErrInvalidTheme
	}
	return nil
}
