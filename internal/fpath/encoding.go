package fpath

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MarshalText renders the canonical form.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses text with the default style.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalJSON accepts a JSON string. JSON null is a NullValue parse error.
func (p *Path) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &ParseError{Kind: NullValue}
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding path: %w", err)
	}
	return p.UnmarshalText([]byte(s))
}

// Value stores the canonical form in a database column.
func (p Path) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan reads a path from a database column. SQL NULL is a NullValue parse error.
func (p *Path) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return &ParseError{Kind: NullValue}
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into fpath.Path", src)
	}
}
