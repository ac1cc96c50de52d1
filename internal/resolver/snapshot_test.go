package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_EdgeCases(t *testing.T) {
	snap := NewSnapshot([]string{
		"EMPTY=",
		"WITH_EQUALS=a=b=c",
		"MALFORMED",
		"=nokey",
		"DUP=first",
		"DUP=second",
	})

	v, ok := snap.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, ok = snap.Lookup("WITH_EQUALS")
	assert.True(t, ok)
	assert.Equal(t, "a=b=c", v)

	_, ok = snap.Lookup("MALFORMED")
	assert.False(t, ok)

	v, _ = snap.Lookup("DUP")
	assert.Equal(t, "second", v)

	assert.Equal(t, 3, snap.Len())
}

func TestSnapshot_Value(t *testing.T) {
	snap := NewSnapshot([]string{"SET=abc", "EMPTY="})

	v, ok := snap.Value("SET")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = snap.Value("EMPTY")
	assert.False(t, ok, "empty value counts as unset")

	_, ok = snap.Value("MISSING")
	assert.False(t, ok)
}

// For any KEY=VALUE pair, the snapshot SHALL return exactly VALUE for KEY.
func TestNewSnapshot_LookupRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("lookup returns the value after the first '='", prop.ForAll(
		func(key, value string) bool {
			snap := NewSnapshot([]string{key + "=" + value})
			got, ok := snap.Lookup(key)
			return ok && got == value
		},
		gen.Identifier(),
		gen.AnyString(),
	))

	properties.Property("environ round-trip is stable", prop.ForAll(
		func(keys []string) bool {
			var environ []string
			for _, k := range keys {
				environ = append(environ, k+"=v_"+k)
			}
			snap := NewSnapshot(environ)
			again := NewSnapshot(snap.Environ())
			return strings.Join(snap.Environ(), "\n") == strings.Join(again.Environ(), "\n")
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestSnapshot_Overlay(t *testing.T) {
	process := NewSnapshot([]string{"A=process", "B="})
	file := FromMap(map[string]string{"A": "file", "B": "file", "C": "file"})

	merged := process.Overlay(file)

	v, _ := merged.Lookup("A")
	assert.Equal(t, "process", v, "process values win")

	v, ok := merged.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "", v, "an explicitly empty process value still wins")

	v, _ = merged.Lookup("C")
	assert.Equal(t, "file", v)

	_, ok = process.Lookup("C")
	assert.False(t, ok, "overlay must not mutate the receiver")
}

func TestFromMap_Copies(t *testing.T) {
	m := map[string]string{"A": "1"}
	snap := FromMap(m)
	m["A"] = "2"

	v, _ := snap.Lookup("A")
	assert.Equal(t, "1", v)
}

func TestEnviron_Sorted(t *testing.T) {
	snap := NewSnapshot([]string{"B=2", "A=1"})
	assert.Equal(t, []string{"A=1", "B=2"}, snap.Environ())
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nDATABASE_URL=postgres://x\nexport NEXTAUTH_SECRET=\"quoted secret\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	snap, err := LoadDotenv(path)
	require.NoError(t, err)

	v, _ := snap.Lookup("DATABASE_URL")
	assert.Equal(t, "postgres://x", v)

	v, _ = snap.Lookup("NEXTAUTH_SECRET")
	assert.Equal(t, "quoted secret", v)
}

func TestLoadDotenv_Missing(t *testing.T) {
	_, err := LoadDotenv(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err) || strings.Contains(err.Error(), "nope.env"))
}
