package cli

import "errors"

var (
	// ErrAborted is returned when the user declines a confirmation gate.
	ErrAborted = errors.New("operation aborted by user")

	// ErrLockHeld is returned when another package operation holds the
	// dpkg/apt lock.
	ErrLockHeld = errors.New("another package operation is in progress; try again later")
)
