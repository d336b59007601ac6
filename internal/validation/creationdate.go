package validation

import (
	"fmt"
	"regexp"
	"time"
)

var creationDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

const creationDateLayout = "2006-01-02T15:04:05Z"

// ValidateCreationDate checks that the creation_date attribute is an
// ISO 8601 timestamp in the UTC timezone, i.e. of the form
// "YYYY-MM-DDThh:mm:ssZ". The regexp alone is not enough, it would
// accept impossible dates like month 13, so the value must also parse
// as a real date in that exact layout.
func ValidateCreationDate(creationDate string) error {
	if !creationDateRegexp.MatchString(creationDate) {
		return creationDateError(creationDate)
	}
	if _, err := time.Parse(creationDateLayout, creationDate); err != nil {
		return creationDateError(creationDate)
	}
	return nil
}

func creationDateError(creationDate string) error {
	return ErrInvalidValue.Msg(fmt.Sprintf(
		"the creation_date attribute must be of the form YYYY-MM-DDThh:mm:ssZ, "+
			"i.e. an ISO 8601 timestamp in the UTC timezone, received %q", creationDate))
}
