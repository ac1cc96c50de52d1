package validator

import (
	"envgate/internal/resolver"
	"envgate/internal/runmode"
	"envgate/internal/schema"
)

// KeyStatus describes one spec key after resolution. Values are never kept.
type KeyStatus struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Present     bool   `json:"present"`
	Description string `json:"description,omitempty"`
}

// Result contains the full outcome of a validation pass
type Result struct {
	Mode    runmode.Mode `json:"mode"`
	Skipped bool         `json:"skipped"`
	Valid   bool         `json:"valid"`
	Missing []string     `json:"missing"`
	Keys    []KeyStatus  `json:"keys"`
}

// Option configures a Validator
type Option func(*Validator)

// WithExemptModes replaces the set of modes in which Validate is skipped.
func WithExemptModes(modes ...runmode.Mode) Option {
	return func(v *Validator) {
		v.exempt = runmode.NewSet(modes...)
	}
}

// Validator checks a spec against an environment snapshot for one run mode.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	spec   schema.Spec
	env    resolver.Snapshot
	mode   runmode.Mode
	exempt runmode.Set
}

// New creates a Validator. By default only development mode is exempt.
func New(spec schema.Spec, env resolver.Snapshot, mode runmode.Mode, opts ...Option) *Validator {
	v := &Validator{
		spec:   spec,
		env:    env,
		mode:   mode,
		exempt: runmode.DefaultExempt(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mode returns the run mode the validator enforces.
func (v *Validator) Mode() runmode.Mode {
	return v.mode
}

// IsMode reports whether the validator runs in mode m.
func (v *Validator) IsMode(m runmode.Mode) bool {
	return v.mode == m
}

// Exempt reports whether the current mode skips validation.
func (v *Validator) Exempt() bool {
	return v.exempt.Contains(v.mode)
}

// Validate checks that every key required in the current mode has a
// non-empty value. All missing keys are reported in a single
// *MissingRequiredError. In an exempt mode nothing is checked.
func (v *Validator) Validate() error {
	if v.Exempt() {
		return nil
	}

	missing := v.missing(resolver.Resolve(v.spec, v.env))
	if len(missing) > 0 {
		return &MissingRequiredError{Keys: missing}
	}
	return nil
}

// Report returns the per-key status together with the validation outcome.
// Key presence is always reported, even in an exempt mode.
func (v *Validator) Report() Result {
	resolved := resolver.Resolve(v.spec, v.env)

	result := Result{
		Mode:    v.mode,
		Skipped: v.Exempt(),
		Missing: []string{},
		Keys:    make([]KeyStatus, 0, len(resolved)),
	}

	for _, rv := range resolved {
		result.Keys = append(result.Keys, KeyStatus{
			Name:        rv.Key.Name,
			Required:    rv.Key.RequiredFor(v.mode),
			Present:     rv.Present,
			Description: rv.Key.Description,
		})
	}

	if !result.Skipped {
		result.Missing = append(result.Missing, v.missing(resolved)...)
	}
	result.Valid = len(result.Missing) == 0

	return result
}

// GetRequired returns the value of key, or a *NotSetError when it is unset
// or empty. The run mode is not consulted.
func (v *Validator) GetRequired(key string) (string, error) {
	value, ok := v.env.Value(key)
	if !ok {
		return "", &NotSetError{Key: key}
	}
	return value, nil
}

// GetOptional returns the value of key and whether it is set and non-empty.
func (v *Validator) GetOptional(key string) (string, bool) {
	return v.env.Value(key)
}

func (v *Validator) missing(resolved []resolver.ResolvedValue) []string {
	var missing []string
	for _, rv := range resolved {
		if rv.Key.RequiredFor(v.mode) && !rv.Present {
			missing = append(missing, rv.Key.Name)
		}
	}
	return missing
}
