package launcher

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// Exec replaces the current process with target, passing args and environ.
// It does not return on success. On failure it returns an error:
//   - command not found (caller should exit 127)
//   - permission denied (caller should exit 126)
//   - other execve failures (caller should exit 1)
func Exec(target string, args []string, environ []string) error {
	execPath, err := exec.LookPath(target)
	if err != nil {
		return err
	}

	argv := append([]string{target}, args...)

	return syscall.Exec(execPath, argv, environ)
}

// IsNotFound checks if the error indicates the command was not found
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return os.IsNotExist(err) || errors.Is(err, exec.ErrNotFound)
}

// IsPermissionDenied checks if the error indicates permission was denied
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	return os.IsPermission(err) || errors.Is(err, os.ErrPermission)
}
