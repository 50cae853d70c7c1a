package request

import (
	"fmt"
	"strings"
)

// Mode selects what a partial does when a field rule rejects its input.
type Mode int

const (
	// ModeStrict returns a *ValidationError from the setter. Also known as verbose.
	ModeStrict Mode = iota
	// ModePermissive discards the input silently. Also known as silent.
	ModePermissive
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModePermissive:
		return "permissive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "strict"/"verbose" and "permissive"/"silent", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "verbose":
		return ModeStrict, nil
	case "permissive", "silent":
		return ModePermissive, nil
	default:
		return ModeStrict, fmt.Errorf("unknown error mode %q", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
