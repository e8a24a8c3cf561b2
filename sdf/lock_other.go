//go:build !unix

package sdf

import (
	"errors"
	"os"
)

var errLockUnsupported = errors.New("file locking not supported")

// lockFile is a no-op where flock is unavailable; concurrent writers must
// coordinate by other means.
func lockFile(*os.File) error {
	return nil
}

func unlockFile(*os.File) error {
	return nil
}
