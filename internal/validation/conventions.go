package validation

import (
	"fmt"
	"regexp"
)

var conventionsRegexp = regexp.MustCompile(`^CF-\d+\.\d+$`)

// ValidateConventions checks that the Conventions attribute names a CF
// conventions version of the form "CF-X.Y".
func ValidateConventions(conventions string) error {
	if !conventionsRegexp.MatchString(conventions) {
		return ErrInvalidValue.Msg(fmt.Sprintf(
			"the Conventions attribute must be of the form \"CF-X.Y\", received %q",
			conventions))
	}
	return nil
}
