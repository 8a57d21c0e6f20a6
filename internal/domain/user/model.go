package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
)

// Role constants
const (
	RoleCreator = "Creator"
	RoleAdmin   = "Admin"
	RoleMember  = "Member"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleCreator, RoleAdmin, RoleMember}

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("role must be one of: Creator, Admin, Member")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
)

// User holds state for a directory-backed account.
// Club membership is not stored on the struct; it lives in the membership
// relation so the user's club list and a club's member list cannot drift.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Ref returns the user's tagged identity.
// INVARIANT: User fields are not mutated
func (u *User) Ref() Ref {
	return NumericRef(u.ID)
}

// LocalPart returns the part of the email before '@', used as a display name.
// INVARIANT: User fields are not mutated
func (u *User) LocalPart() string {
	if i := strings.Index(u.Email, "@"); i >= 0 {
		return u.Email[:i]
	}
	return u.Email
}

// CanManageMembers returns true if the user may remove members or assign admins.
// INVARIANT: User fields are not mutated
func (u *User) CanManageMembers() bool {
	return u.Role == RoleCreator || u.Role == RoleAdmin
}

// IsCreator returns true if the user has the Creator role.
// INVARIANT: User fields are not mutated
func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
