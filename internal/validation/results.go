package validation

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// CheckResult is the outcome of one wrapped check.
type CheckResult struct {
	// Description says what the check was doing, e.g.
	// `Validate the "creation_date" attribute`.
	Description string

	// Err is nil when the check passed.
	Err error
}

// Passed reports whether the check succeeded.
func (r CheckResult) Passed() bool {
	return r.Err == nil
}

// ValidationResultsStore accumulates the results of independent checks
// so a single validation pass reports every problem with a file, not
// just the first. One store per file per pass; never shared across
// concurrent tasks.
//
// Wrap runs a check and records its outcome without ever propagating
// the failure. RaiseIfErrors is the only point at which accumulated
// failures become a returned error.
type ValidationResultsStore struct {
	results []CheckResult
}

// NewValidationResultsStore returns an empty store.
func NewValidationResultsStore() *ValidationResultsStore {
	return &ValidationResultsStore{}
}

// Wrap executes check and records the outcome under description. Both
// returned errors and panics are captured; neither propagates. Results
// are kept in registration order so reports are reproducible.
func (s *ValidationResultsStore) Wrap(description string, check func() error) {
	err := runCheck(check)
	if err != nil {
		log.Debug().Str("check", description).Err(err).Msg("check failed")
	}
	s.results = append(s.results, CheckResult{Description: description, Err: err})
}

func runCheck(check func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return check()
}

// Results returns all recorded results in registration order.
func (s *ValidationResultsStore) Results() []CheckResult {
	return s.results
}

// Failures returns the failed results in registration order.
func (s *ValidationResultsStore) Failures() []CheckResult {
	var out []CheckResult
	for _, r := range s.results {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}

// Checks returns the number of checks run so far.
func (s *ValidationResultsStore) Checks() int {
	return len(s.results)
}

// RaiseIfErrors returns nil when every recorded check passed, and
// otherwise one aggregate error listing every failure in the order the
// checks ran. The individual failures are wrapped so errors.Is can
// still see their kinds through the aggregate.
func (s *ValidationResultsStore) RaiseIfErrors() error {
	failures := s.Failures()
	if len(failures) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d checks failed:", len(failures), len(s.results))
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		fmt.Fprintf(&b, "\n\n%s failed. Error: %v", f.Description, f.Err)
		errs = append(errs, f.Err)
	}
	return ErrValidation.MsgErr(b.String(), errs...)
}

// Merge appends the other store's results to s, preserving order.
// Used when tree-level checks extend a file-level pass.
func (s *ValidationResultsStore) Merge(other *ValidationResultsStore) {
	if other != nil {
		s.results = append(s.results, other.results...)
	}
}
