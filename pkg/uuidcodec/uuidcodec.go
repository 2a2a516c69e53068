// Package uuidcodec normalizes the two identifier encodings found in
// orchestrator databases. Older files store ids as 16-byte BLOBs, newer
// ones as text UUIDs; some files contain both. Every identifier leaving
// the API is rendered in canonical lowercase dashed form regardless of
// how it is stored.
package uuidcodec

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// Decode parses an identifier in any accepted input form: canonical
// dashed, plain 32-hex, either case. The second return is false when the
// input is not a UUID in any form; Decode never panics on bad input.
func Decode(s string) ([]byte, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, false
	}
	b := make([]byte, 16)
	copy(b, u[:])
	return b, true
}

// Render returns the canonical lowercase dashed form of a 16-byte value.
func Render(b []byte) string {
	if len(b) != 16 {
		return ""
	}
	var u uuid.UUID
	copy(u[:], b)
	return u.String()
}

// RenderValue normalizes a value scanned from an id column. The rule is
// purely type-based: a []byte of length 16 renders as a canonical UUID,
// any other []byte is returned as its text, everything else passes
// through unchanged.
func RenderValue(v any) any {
	switch val := v.(type) {
	case []byte:
		if len(val) == 16 {
			return Render(val)
		}
		// Text stored in a BLOB column still arrives as []byte.
		return string(val)
	default:
		return v
	}
}

// Forms holds every representation of one identifier that a query must
// match against, covering both storage encodings.
type Forms struct {
	// Binary is the 16-byte BLOB representation, nil when the input
	// was not a valid UUID.
	Binary []byte
	// Canonical is the lowercase dashed text form.
	Canonical string
	// Plain is the lowercase form with dashes stripped.
	Plain string
}

// FormsOf derives all matchable representations of an identifier. The
// second return is false for input that is not a UUID in any form.
func FormsOf(s string) (Forms, bool) {
	b, ok := Decode(s)
	if !ok {
		return Forms{}, false
	}
	canonical := Render(b)
	plain := canonical[:8] + canonical[9:13] + canonical[14:18] + canonical[19:23] + canonical[24:]
	return Forms{Binary: b, Canonical: canonical, Plain: plain}, true
}

// ID is an identifier column value. It scans from either storage
// encoding and always stores back as a 16-byte BLOB.
type ID []byte

// New returns a freshly generated random ID.
func New() ID {
	u := uuid.New()
	b := make([]byte, 16)
	copy(b, u[:])
	return ID(b)
}

// ParseID decodes an identifier string into an ID.
func ParseID(s string) (ID, error) {
	b, ok := Decode(s)
	if !ok {
		return nil, fmt.Errorf("invalid identifier: %q", s)
	}
	return ID(b), nil
}

// String renders the canonical lowercase dashed form.
func (id ID) String() string {
	return Render(id)
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return len(id) == 0
}

// Scan implements sql.Scanner for both storage encodings.
func (id *ID) Scan(src any) error {
	if src == nil {
		*id = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 16 {
			b := make([]byte, 16)
			copy(b, v)
			*id = ID(b)
			return nil
		}
		u, err := uuid.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		b := make([]byte, 16)
		copy(b, u[:])
		*id = ID(b)
		return nil
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		b := make([]byte, 16)
		copy(b, u[:])
		*id = ID(b)
		return nil
	default:
		return fmt.Errorf("scan id: unsupported type %T", src)
	}
}

// Value implements driver.Valuer, storing the 16-byte BLOB form.
func (id ID) Value() (driver.Value, error) {
	if len(id) == 0 {
		return nil, nil
	}
	if len(id) != 16 {
		return nil, fmt.Errorf("id is %d bytes, want 16", len(id))
	}
	return []byte(id), nil
}

// MarshalJSON renders the canonical form as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	if len(id) == 0 {
		return []byte("null"), nil
	}
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON accepts any input form.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = nil
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("id must be a JSON string")
	}
	parsed, err := ParseID(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
