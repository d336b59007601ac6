package drs

import "github.com/climforge/forcingval/internal/common/apperrors"

var (
	// ErrTemplateParse is returned for grammar violations in a DRS
	// template. These indicate a broken CV definition, not a problem
	// with any particular file, and are never aggregated.
	ErrTemplateParse apperrors.Error = apperrors.New("malformed DRS template")

	// ErrMissingMetadata is returned when a required substitution key
	// is absent from the available attributes. Distinct from
	// ErrInvalidCharacters so callers can tell a missing attribute
	// apart from a bad value.
	ErrMissingMetadata apperrors.Error = apperrors.New("metadata required for substitution is missing")

	// ErrInvalidCharacters is returned when a metadata value or a
	// generated path component contains characters the DRS forbids.
	ErrInvalidCharacters apperrors.Error = apperrors.New("invalid characters")

	// ErrTimeRangeRequired is returned when the DRS demands time-range
	// information but the caller supplied no start/end time.
	ErrTimeRangeRequired apperrors.Error = apperrors.New("DRS requires time range information")

	// ErrOptionalNotSupported is returned by the inverse operation
	// when the directory template contains optional sections. Only the
	// forward direction handles optional components.
	ErrOptionalNotSupported apperrors.Error = apperrors.New("optional template components are not supported when extracting metadata")

	// ErrPathMismatch is returned when a directory does not match the
	// pattern generated from the directory template.
	ErrPathMismatch apperrors.Error = apperrors.New("path does not match the DRS directory template")
)
