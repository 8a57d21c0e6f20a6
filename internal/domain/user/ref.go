package user

import "strconv"

// Ref is a tagged member identity. Directory-backed users carry a numeric
// id; quick-login accounts carry an opaque external string (e.g. "qa_handler").
// Unifying both under one type keeps membership comparisons from silently
// failing on a type mismatch.
type Ref struct {
	num int64
	ext string
}

// NumericRef returns a Ref for a directory-backed user id.
func NumericRef(id int64) Ref {
	return Ref{num: id}
}

// ExternalRef returns a Ref for a synthetic identity string.
func ExternalRef(id string) Ref {
	return Ref{ext: id}
}

// ParseRef decodes a stored identity string. All-digit strings are treated
// as numeric ids; everything else is an external identity.
func ParseRef(s string) Ref {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericRef(n)
	}
	return ExternalRef(s)
}

// IsNumeric returns true if the ref identifies a directory-backed user.
func (r Ref) IsNumeric() bool {
	return r.ext == ""
}

// Numeric returns the numeric user id, or 0 for external identities.
func (r Ref) Numeric() int64 {
	return r.num
}

// IsZero returns true for the zero Ref.
func (r Ref) IsZero() bool {
	return r.num == 0 && r.ext == ""
}

// String returns the canonical storage form of the identity.
func (r Ref) String() string {
	if r.IsNumeric() {
		return strconv.FormatInt(r.num, 10)
	}
	return r.ext
}
