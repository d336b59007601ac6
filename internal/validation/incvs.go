package validation

import (
	"fmt"
	"slices"
)

// AssertInCVs checks that value is among the legal values the CVs
// define for cvsKey. The failure message names the offending value,
// the full set of legal values, and the loader the CVs came from, so
// CV-version mismatches can be traced from the message alone.
func AssertInCVs(value string, cvsKey string, cvValues []string, loaderDescription string) error {
	if slices.Contains(cvValues, value) {
		return nil
	}
	return ErrNotInCVs.Msg(fmt.Sprintf(
		"received %s=%q, which is not in the available CV values %q, CVs raw data loaded with %s",
		cvsKey, value, cvValues, loaderDescription))
}
