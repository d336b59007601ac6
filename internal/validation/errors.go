package validation

import "github.com/climforge/forcingval/internal/common/apperrors"

var (
	// ErrValidation is the aggregate error raised once all checks for
	// a file have run. Its message lists every individual failure. The
	// exit code separates "the file is invalid" from operational
	// failures for scripted callers.
	ErrValidation apperrors.Error = apperrors.New("validation failed").SetExitCode(2)

	// ErrMissingAttribute signals that an expected attribute key is
	// absent from the metadata mapping. Deliberately distinct from
	// ErrInvalidValue so callers can tell the two apart without
	// parsing message text.
	ErrMissingAttribute apperrors.Error = apperrors.New("expected attribute is missing")

	// ErrInvalidValue signals that an attribute is present but its
	// value does not satisfy the attribute's format rules.
	ErrInvalidValue apperrors.Error = apperrors.New("attribute value is invalid")

	// ErrNotInCVs signals that a value is not among the legal values
	// the CVs define for its key.
	ErrNotInCVs apperrors.Error = apperrors.New("value is not in the CVs")

	// ErrInconsistentWithCVs signals that a user-supplied value does
	// not match the value the CVs mandate given a determinant key.
	ErrInconsistentWithCVs apperrors.Error = apperrors.New("value is inconsistent with the CVs")

	// ErrDRSInconsistent signals that a file's path disagrees with the
	// metadata recorded in the file's own attributes.
	ErrDRSInconsistent apperrors.Error = apperrors.New("path is inconsistent with the DRS")
)
