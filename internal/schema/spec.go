package schema

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrEmptyKey is returned when a key has no name
	ErrEmptyKey = errors.New("key name is empty")

	// ErrInvalidKeyName is returned when a key name is not a valid environment variable name
	ErrInvalidKeyName = errors.New("invalid key name")

	// ErrDuplicateKey is returned when the same key name appears twice
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownKey is returned when a referenced key is not part of the spec
	ErrUnknownKey = errors.New("unknown key")

	// ErrModeVarKey is returned when the run mode variable is declared as a key
	ErrModeVarKey = errors.New("mode variable cannot be a config key")
)

// keyNameRegex validates key names: letters, digits and underscores, not starting with a digit
var keyNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New builds a Spec from keys, preserving their order.
func New(keys ...Key) (Spec, error) {
	s := Spec{
		keys:  make([]Key, 0, len(keys)),
		index: make(map[string]int, len(keys)),
	}

	for _, k := range keys {
		if k.Name == "" {
			return Spec{}, ErrEmptyKey
		}
		if !keyNameRegex.MatchString(k.Name) {
			return Spec{}, fmt.Errorf("%w: '%s'", ErrInvalidKeyName, k.Name)
		}
		if _, dup := s.index[k.Name]; dup {
			return Spec{}, fmt.Errorf("%w: '%s'", ErrDuplicateKey, k.Name)
		}
		s.index[k.Name] = len(s.keys)
		s.keys = append(s.keys, k.clone())
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(keys ...Key) Spec {
	s, err := New(keys...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithRequired returns a copy of the spec with the named keys promoted to
// required. The receiver is left untouched.
func (s Spec) WithRequired(names ...string) (Spec, error) {
	keys := s.Keys()
	for _, name := range names {
		i, ok := s.index[name]
		if !ok {
			return Spec{}, fmt.Errorf("%w: '%s'", ErrUnknownKey, name)
		}
		keys[i].Required = true
	}

	out, err := New(keys...)
	if err != nil {
		return Spec{}, err
	}
	out.modeVar = s.modeVar
	out.exemptModes = s.ExemptModes()
	return out, nil
}

// CheckModeVar rejects a spec that declares the run mode variable as one of
// its keys. The mode decides whether validation runs at all, so it cannot be
// validated itself.
func (s Spec) CheckModeVar(modeVar string) error {
	if modeVar == "" {
		return nil
	}
	if !keyNameRegex.MatchString(modeVar) {
		return fmt.Errorf("%w: mode variable '%s'", ErrInvalidKeyName, modeVar)
	}
	if _, ok := s.index[modeVar]; ok {
		return fmt.Errorf("%w: '%s'", ErrModeVarKey, modeVar)
	}
	return nil
}

// Default returns the canonical key table for the web application.
// Only the session secret is required; everything else can be added later.
func Default() Spec {
	return defaultSpec
}

var defaultSpec = MustNew(
	Key{Name: "NEXTAUTH_SECRET", Required: true, Description: "NextAuth session signing secret"},

	Key{Name: "NEXT_PUBLIC_APP_URL", Description: "Public base URL of the application"},
	Key{Name: "NEXTAUTH_URL", Description: "NextAuth callback base URL (set automatically on Vercel)"},

	Key{Name: "GOOGLE_CLIENT_ID", Description: "Google OAuth client ID"},
	Key{Name: "GOOGLE_CLIENT_SECRET", Description: "Google OAuth client secret"},

	Key{Name: "ELEVENLABS_API_KEY", Description: "ElevenLabs speech synthesis API key"},
	Key{Name: "REPLICATE_API_KEY", Description: "Replicate generative media API key"},
	Key{Name: "OPENAI_API_KEY", Description: "OpenAI API key"},

	Key{Name: "AWS_ACCESS_KEY_ID", Description: "Object storage access key"},
	Key{Name: "AWS_SECRET_ACCESS_KEY", Description: "Object storage secret key"},
	Key{Name: "AWS_REGION", Description: "Object storage region"},
	Key{Name: "S3_BUCKET_NAME", Description: "Object storage bucket"},

	Key{Name: "DATABASE_URL", Description: "Database connection string"},
	Key{Name: "REDIS_URL", Description: "Cache and queue connection string"},

	Key{Name: "STRIPE_SECRET_KEY", Description: "Stripe secret key"},
	Key{Name: "STRIPE_WEBHOOK_SECRET", Description: "Stripe webhook signing secret"},
	Key{Name: "NEXT_PUBLIC_STRIPE_PUBLISHABLE_KEY", Description: "Stripe publishable key"},

	Key{Name: "SMTP_HOST", Description: "Outbound mail server host"},
	Key{Name: "SMTP_PORT", Description: "Outbound mail server port"},
	Key{Name: "SMTP_USER", Description: "Outbound mail username"},
	Key{Name: "SMTP_PASSWORD", Description: "Outbound mail password"},
	Key{Name: "EMAIL_FROM", Description: "Sender address for outbound mail"},

	Key{Name: "SENTRY_DSN", Description: "Error tracking DSN"},
)
