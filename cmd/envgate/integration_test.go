package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary builds the envgate binary for integration tests
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("run relies on execve")
	}

	binPath := filepath.Join(t.TempDir(), "envgate")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build envgate binary: %s", output)

	return binPath
}

// runBinary executes the binary with a clean environment plus environ.
func runBinary(t *testing.T, bin string, environ []string, args ...string) (int, string, string) {
	t.Helper()

	cmd := exec.Command(bin, args...)
	cmd.Env = append([]string{"PATH=" + os.Getenv("PATH")}, environ...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "unexpected error: %v", err)
		code = exitErr.ExitCode()
	}
	return code, stdout.String(), stderr.String()
}

// A failed check SHALL block the target command; a passing check SHALL
// hand the process over to it with the same environment.
func TestIntegration_ExecutionGate(t *testing.T) {
	bin := buildBinary(t)

	code, stdout, stderr := runBinary(t, bin,
		[]string{"NODE_ENV=production"},
		"run", "sh", "-c", "echo executed")
	assert.Equal(t, 1, code)
	assert.NotContains(t, stdout, "executed")
	assert.Contains(t, stderr, "NEXTAUTH_SECRET: required but not set")

	code, stdout, stderr = runBinary(t, bin,
		[]string{"NODE_ENV=production", "NEXTAUTH_SECRET=abc"},
		"run", "sh", "-c", "echo executed $NEXTAUTH_SECRET")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "executed abc\n", stdout)
}

func TestIntegration_ExitCodePropagates(t *testing.T) {
	bin := buildBinary(t)

	code, _, _ := runBinary(t, bin,
		[]string{"NODE_ENV=development"},
		"run", "sh", "-c", "exit 42")
	assert.Equal(t, 42, code)
}

func TestIntegration_EnvFileReachesChild(t *testing.T) {
	bin := buildBinary(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NEXTAUTH_SECRET=from-file\n"), 0600))

	code, stdout, stderr := runBinary(t, bin,
		[]string{"NODE_ENV=production"},
		"run", "--env-file", envFile, "sh", "-c", "echo $NEXTAUTH_SECRET")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "from-file\n", stdout)
}

func TestIntegration_SettingsFromEnvironment(t *testing.T) {
	bin := buildBinary(t)

	code, _, _ := runBinary(t, bin,
		[]string{"APP_ENV=development", "ENVGATE_MODE_VAR=APP_ENV"},
		"check")
	assert.Equal(t, 0, code)

	code, _, stderr := runBinary(t, bin,
		[]string{"ENVGATE_LOG_LEVEL=loud"},
		"check")
	assert.Equal(t, 2, code)
	assert.True(t, strings.HasPrefix(stderr, "Error:"))
}
