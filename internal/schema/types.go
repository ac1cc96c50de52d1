package schema

import (
	"envgate/internal/runmode"
)

// Key represents a single configuration requirement
type Key struct {
	Name        string         // Environment variable name (e.g., "DATABASE_URL")
	Required    bool           // Required in every enforced mode
	RequiredIn  []runmode.Mode // Required only in these modes (ignored when Required is set)
	Description string
}

// RequiredFor reports whether the key must be set when running in mode m.
func (k Key) RequiredFor(m runmode.Mode) bool {
	if k.Required {
		return true
	}
	for _, rm := range k.RequiredIn {
		if rm == m {
			return true
		}
	}
	return false
}

func (k Key) clone() Key {
	if k.RequiredIn != nil {
		k.RequiredIn = append([]runmode.Mode(nil), k.RequiredIn...)
	}
	return k
}

// Spec is an ordered, immutable set of configuration keys.
// The zero value is an empty spec.
type Spec struct {
	keys        []Key
	index       map[string]int
	modeVar     string
	exemptModes []runmode.Mode
}

// Len returns the number of keys in the spec.
func (s Spec) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in declaration order.
func (s Spec) Keys() []Key {
	keys := make([]Key, len(s.keys))
	for i, k := range s.keys {
		keys[i] = k.clone()
	}
	return keys
}

// Names returns the key names in declaration order.
func (s Spec) Names() []string {
	names := make([]string, len(s.keys))
	for i, k := range s.keys {
		names[i] = k.Name
	}
	return names
}

// Lookup returns the key with the given name.
func (s Spec) Lookup(name string) (Key, bool) {
	i, ok := s.index[name]
	if !ok {
		return Key{}, false
	}
	return s.keys[i].clone(), true
}

// ModeVar returns the environment variable the spec reads its run mode
// from, or "" when the spec leaves it to the caller.
func (s Spec) ModeVar() string {
	return s.modeVar
}

// ExemptModes returns the modes the spec declares exempt from validation,
// or nil when the spec leaves it to the caller. An explicitly empty list
// is returned as a non-nil empty slice.
func (s Spec) ExemptModes() []runmode.Mode {
	if s.exemptModes == nil {
		return nil
	}
	out := make([]runmode.Mode, len(s.exemptModes))
	copy(out, s.exemptModes)
	return out
}
