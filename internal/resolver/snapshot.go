package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Snapshot is an immutable view of environment variables taken at one point
// in time. The zero value is an empty snapshot.
type Snapshot struct {
	vars map[string]string
}

// NewSnapshot builds a snapshot from an environ slice (format: "KEY=VALUE"),
// such as the one returned by os.Environ.
func NewSnapshot(environ []string) Snapshot {
	return Snapshot{vars: parseEnviron(environ)}
}

// FromMap builds a snapshot from a map. The map is copied.
func FromMap(m map[string]string) Snapshot {
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[k] = v
	}
	return Snapshot{vars: vars}
}

// Lookup returns the raw value of key and whether it is set at all.
// An empty value is reported as set.
func (s Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Value returns the value of key when it is set and non-empty.
func (s Snapshot) Value(key string) (string, bool) {
	v, ok := s.vars[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len returns the number of variables in the snapshot.
func (s Snapshot) Len() int {
	return len(s.vars)
}

// Overlay returns a new snapshot holding every variable of s, plus the
// variables of base that s does not set.
func (s Snapshot) Overlay(base Snapshot) Snapshot {
	vars := make(map[string]string, len(s.vars)+len(base.vars))
	for k, v := range base.vars {
		vars[k] = v
	}
	for k, v := range s.vars {
		vars[k] = v
	}
	return Snapshot{vars: vars}
}

// Environ renders the snapshot as a sorted environ slice, suitable for
// passing to a child process.
func (s Snapshot) Environ() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	environ := make([]string, len(keys))
	for i, k := range keys {
		environ[i] = k + "=" + s.vars[k]
	}
	return environ
}

// LoadDotenv reads a dotenv file into a snapshot.
func LoadDotenv(path string) (Snapshot, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return FromMap(vars), nil
}

// parseEnviron converts an environ slice (["KEY=VALUE", ...]) into a map.
// Handles edge cases like empty values ("KEY=") and values containing "=" ("KEY=a=b").
// Later entries win, as with os.Getenv.
func parseEnviron(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, entry := range environ {
		// Split on first "=" only - values can contain "="
		idx := strings.Index(entry, "=")
		if idx <= 0 {
			// No "=" found or empty name, skip malformed entry
			continue
		}
		result[entry[:idx]] = entry[idx+1:]
	}
	return result
}
