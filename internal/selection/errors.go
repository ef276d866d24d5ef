package selection

import "errors"

// Selection errors.
var (
	// ErrRestoreUnavailable indicates the persisted range marks are missing
	// or no longer resolve to entries of the current list.
	ErrRestoreUnavailable = errors.New("previous selection unavailable")

	// ErrEmptyList indicates a session cannot start on a list without entries.
	ErrEmptyList = errors.New("empty list")

	// ErrSessionActive indicates a session is already in progress.
	ErrSessionActive = errors.New("selection session already active")

	// ErrSessionInactive indicates an operation that requires an active session.
	ErrSessionInactive = errors.New("no active selection session")
)
