package resolver

import (
	"envgate/internal/schema"
)

// ResolvedValue represents a resolved config value
type ResolvedValue struct {
	Key     schema.Key // The spec entry
	Value   string     // The resolved value (empty if not set)
	Present bool       // Whether the variable is set to a non-empty value
}

// Resolve looks up every key of the spec in the snapshot, in spec order.
func Resolve(s schema.Spec, snap Snapshot) []ResolvedValue {
	keys := s.Keys()
	results := make([]ResolvedValue, 0, len(keys))
	for _, k := range keys {
		value, present := snap.Value(k.Name)
		results = append(results, ResolvedValue{
			Key:     k,
			Value:   value,
			Present: present,
		})
	}
	return results
}
