package session

import (
	"encoding/json"
	"errors"
	"time"

	"clubhub/internal/domain/user"
)

// Lifetime is how long a session token stays valid.
const Lifetime = 24 * time.Hour

// Domain errors
var (
	ErrMalformedBlob = errors.New("session blob is malformed")
)

// Snapshot is the identity a session carries. For directory-backed users
// only the id is authoritative; email, role and clubs are re-resolved from
// the directory on restore. For quick accounts the snapshot IS the record —
// there is no backing store row to resolve against.
type Snapshot struct {
	Ref   user.Ref
	Email string
	Role  string
	Clubs []int64
}

// IsSynthetic returns true if the snapshot describes a quick account.
// INVARIANT: Snapshot fields are not mutated
func (s Snapshot) IsSynthetic() bool {
	return !s.Ref.IsNumeric()
}

// Record is one persisted session row.
type Record struct {
	Token     string
	Blob      string
	CreatedAt time.Time
}

// Expired returns true if the record is past its lifetime.
// INVARIANT: Record fields are not mutated
func (r Record) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > Lifetime
}

// blobJSON is the wire form of the persisted blob. Directory-backed users
// serialize as {"id": 3}; quick accounts serialize the full synthetic record.
type blobJSON struct {
	ID    json.RawMessage `json:"id"`
	Email string          `json:"email,omitempty"`
	Role  string          `json:"role,omitempty"`
	Clubs []int64         `json:"clubs,omitempty"`
}

// EncodeBlob serializes a snapshot into its persisted form.
// PRE: s.Ref is non-zero
// POST: returns {"id":N} for numeric identities, the full record otherwise
func EncodeBlob(s Snapshot) (string, error) {
	var b blobJSON
	if s.Ref.IsNumeric() {
		id, err := json.Marshal(s.Ref.Numeric())
		if err != nil {
			return "", err
		}
		b.ID = id
	} else {
		id, err := json.Marshal(s.Ref.String())
		if err != nil {
			return "", err
		}
		b = blobJSON{ID: id, Email: s.Email, Role: s.Role, Clubs: s.Clubs}
		if b.Clubs == nil {
			b.Clubs = []int64{}
		}
	}
	out, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeBlob parses a persisted blob back into a snapshot.
// PRE: blob was produced by EncodeBlob (or an earlier compatible writer)
// POST: numeric blobs yield a Snapshot carrying only the Ref
func DecodeBlob(blob string) (Snapshot, error) {
	var b blobJSON
	if err := json.Unmarshal([]byte(blob), &b); err != nil {
		return Snapshot{}, ErrMalformedBlob
	}
	if len(b.ID) == 0 {
		return Snapshot{}, ErrMalformedBlob
	}

	var numericID int64
	if err := json.Unmarshal(b.ID, &numericID); err == nil {
		return Snapshot{Ref: user.NumericRef(numericID)}, nil
	}

	var externalID string
	if err := json.Unmarshal(b.ID, &externalID); err != nil || externalID == "" {
		return Snapshot{}, ErrMalformedBlob
	}
	clubs := b.Clubs
	if clubs == nil {
		clubs = []int64{}
	}
	return Snapshot{
		Ref:   user.ExternalRef(externalID),
		Email: b.Email,
		Role:  b.Role,
		Clubs: clubs,
	}, nil
}
