package sysfs

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotFound marks a missing path. At the base directory this is the
	// signal for unsupported or misconfigured hardware.
	ErrNotFound = errors.New("attribute path not found")

	// ErrPermission marks an access failure (typically: not running as root).
	ErrPermission = errors.New("attribute access denied")

	// ErrInvalidValue marks a write the kernel driver rejected with EINVAL.
	ErrInvalidValue = errors.New("value rejected by driver")
)

// classify wraps an OS-level file error so that callers can match it against
// the package sentinels with errors.Is. Errors outside the closed set pass
// through untouched.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return errors.Join(ErrPermission, err)
	case errors.Is(err, unix.EINVAL):
		return errors.Join(ErrInvalidValue, err)
	}
	return err
}
