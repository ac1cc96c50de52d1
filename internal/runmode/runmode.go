package runmode

import "strings"

// Mode is the deployment mode a process runs in (e.g., "production").
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
	Test        Mode = "test"
	Staging     Mode = "staging"
)

var aliases = map[string]Mode{
	"dev":  Development,
	"prod": Production,
}

// Parse normalizes a raw mode value. Surrounding whitespace is trimmed and
// the value is lowercased; "dev" and "prod" map to their long forms.
// Any other non-empty value is accepted as-is.
func Parse(s string) Mode {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := aliases[s]; ok {
		return m
	}
	return Mode(s)
}

// ParseList parses each entry of values, dropping empty ones.
func ParseList(values []string) []Mode {
	modes := make([]Mode, 0, len(values))
	for _, v := range values {
		if m := Parse(v); !m.IsZero() {
			modes = append(modes, m)
		}
	}
	return modes
}

func (m Mode) String() string {
	return string(m)
}

// IsZero reports whether the mode is unset.
func (m Mode) IsZero() bool {
	return m == ""
}

// Set is a small set of modes. The zero value is empty.
type Set map[Mode]struct{}

// NewSet builds a Set from the given modes, ignoring unset ones.
func NewSet(modes ...Mode) Set {
	s := make(Set, len(modes))
	for _, m := range modes {
		if !m.IsZero() {
			s[m] = struct{}{}
		}
	}
	return s
}

// DefaultExempt returns the modes in which validation is skipped when
// nothing else is configured.
func DefaultExempt() Set {
	return NewSet(Development)
}

// Contains reports whether m is in the set.
func (s Set) Contains(m Mode) bool {
	_, ok := s[m]
	return ok
}

// Resolve picks the effective mode: an explicit override wins, then the raw
// environment value, then fallback.
func Resolve(override, raw string, fallback Mode) Mode {
	if m := Parse(override); !m.IsZero() {
		return m
	}
	if m := Parse(raw); !m.IsZero() {
		return m
	}
	return fallback
}
