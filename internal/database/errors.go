package database

import "github.com/climforge/forcingval/internal/common/apperrors"

var (
	// ErrEntry signals an entry that violates the record invariants.
	ErrEntry apperrors.Error = apperrors.New("invalid database entry")

	// ErrDatabase signals a problem with the database directory or its
	// persisted documents.
	ErrDatabase apperrors.Error = apperrors.New("database error")

	// ErrHashMismatch signals that a file's content no longer matches
	// the sha256 recorded in its entry.
	ErrHashMismatch apperrors.Error = apperrors.New("file hash does not match the recorded sha256")
)
