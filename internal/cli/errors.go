package cli

import (
	"errors"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/index"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Board errors
	ErrBoardNotFound     = "BOARD_NOT_FOUND"
	ErrBoardNotSpecified = "BOARD_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Card errors
	ErrCardNotFound = "CARD_NOT_FOUND"
	ErrCardExists   = "CARD_EXISTS"
	ErrNotAChild    = "NOT_A_CHILD"
	ErrInvalidDepth = "INVALID_DEPTH"
	ErrRootDeletion = "ROOT_DELETION"

	// Snapshot errors
	ErrSnapshotInvalid = "SNAPSHOT_INVALID"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"
	ErrIndexLocked   = "INDEX_LOCKED"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnSnapshotRecovered  = "SNAPSHOT_RECOVERED"
	WarnSnapshotSaveFailed = "SNAPSHOT_SAVE_FAILED"
	WarnPathTruncated      = "PATH_TRUNCATED"
)

// errorCode maps board errors to their stable codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, board.ErrCardNotFound):
		return ErrCardNotFound
	case errors.Is(err, board.ErrCardExists):
		return ErrCardExists
	case errors.Is(err, board.ErrNotChild):
		return ErrNotAChild
	case errors.Is(err, board.ErrInvalidDepth):
		return ErrInvalidDepth
	case errors.Is(err, board.ErrRootDeletion):
		return ErrRootDeletion
	case errors.Is(err, board.ErrInvalidSnapshot):
		return ErrSnapshotInvalid
	case errors.Is(err, index.ErrIndexLocked):
		return ErrIndexLocked
	case errors.Is(err, index.ErrCardNotIndexed):
		return ErrDatabaseError
	default:
		return ErrInternal
	}
}

// errorSuggestion offers a follow-up for common failures.
func errorSuggestion(err error) string {
	switch {
	case errors.Is(err, board.ErrCardNotFound):
		return "Run 'cvd tree' to see card ids"
	case errors.Is(err, board.ErrNotChild):
		return "Zoom targets must be children of the focused card; use 'cvd jump' for arbitrary cards"
	case errors.Is(err, board.ErrRootDeletion):
		return "The root card cannot be deleted; use 'cvd clear' to empty it"
	case errors.Is(err, board.ErrInvalidSnapshot):
		return "Restore board.json from a backup or re-import from an export"
	case errors.Is(err, index.ErrIndexLocked):
		return "Another cvd process is rebuilding the index; retry in a moment"
	default:
		return ""
	}
}

// handleBoardError reports a command failure with its mapped code.
func handleBoardError(err error) error {
	return handleError(errorCode(err), err, errorSuggestion(err))
}
