//go:build unix

package sdf

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var errLockUnsupported = unix.ENOTSUP

// lockFile blocks until f is exclusively locked.
func lockFile(f *os.File) error {
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
