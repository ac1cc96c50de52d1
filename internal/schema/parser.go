package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"envgate/internal/runmode"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the spec file looked up when no path is given
const DefaultFileName = "envgate.yaml"

// specFile represents the YAML file structure
type specFile struct {
	ModeVar     string     `yaml:"mode_var,omitempty"`
	ExemptModes *[]string  `yaml:"exempt_modes,omitempty"`
	Keys        []keyEntry `yaml:"keys"`
}

// keyEntry represents a single key entry in YAML
type keyEntry struct {
	Name        string   `yaml:"name"`
	Required    bool     `yaml:"required,omitempty"`
	RequiredIn  []string `yaml:"required_in,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// ParseSpec parses YAML content into a Spec
func ParseSpec(content []byte) (Spec, error) {
	var sf specFile
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return Spec{}, errors.New("spec is empty")
		}
		return Spec{}, fmt.Errorf("invalid YAML: %w", err)
	}

	if len(sf.Keys) == 0 {
		return Spec{}, errors.New("spec declares no keys")
	}

	keys := make([]Key, 0, len(sf.Keys))
	for i, entry := range sf.Keys {
		if entry.Name == "" {
			return Spec{}, fmt.Errorf("key at index %d: missing required field 'name'", i)
		}

		var requiredIn []runmode.Mode
		if len(entry.RequiredIn) > 0 {
			requiredIn = runmode.ParseList(entry.RequiredIn)
			if len(requiredIn) == 0 {
				return Spec{}, fmt.Errorf("key '%s': 'required_in' lists no modes", entry.Name)
			}
		}

		keys = append(keys, Key{
			Name:        entry.Name,
			Required:    entry.Required,
			RequiredIn:  requiredIn,
			Description: entry.Description,
		})
	}

	s, err := New(keys...)
	if err != nil {
		return Spec{}, err
	}

	s.modeVar = sf.ModeVar
	// Present but empty means no mode is exempt.
	if sf.ExemptModes != nil {
		s.exemptModes = runmode.ParseList(*sf.ExemptModes)
	}

	if err := s.CheckModeVar(s.modeVar); err != nil {
		return Spec{}, err
	}

	return s, nil
}

// ToYAML serializes a Spec back to YAML bytes
func (s Spec) ToYAML() ([]byte, error) {
	sf := specFile{
		ModeVar: s.modeVar,
		Keys:    make([]keyEntry, 0, len(s.keys)),
	}

	if s.exemptModes != nil {
		exempt := make([]string, 0, len(s.exemptModes))
		for _, m := range s.exemptModes {
			exempt = append(exempt, m.String())
		}
		sf.ExemptModes = &exempt
	}

	for _, k := range s.keys {
		entry := keyEntry{
			Name:        k.Name,
			Required:    k.Required,
			Description: k.Description,
		}
		for _, m := range k.RequiredIn {
			entry.RequiredIn = append(entry.RequiredIn, m.String())
		}
		sf.Keys = append(sf.Keys, entry)
	}

	return yaml.Marshal(&sf)
}

// LoadSpec reads and parses envgate.yaml from the given directory
func LoadSpec(dir string) (Spec, error) {
	path := filepath.Join(dir, DefaultFileName)
	return LoadSpecFromPath(path)
}

// LoadSpecFromPath reads and parses a spec from the given file path
func LoadSpecFromPath(path string) (Spec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, err
		}
		return Spec{}, fmt.Errorf("failed to read spec: %w", err)
	}

	return ParseSpec(content)
}
