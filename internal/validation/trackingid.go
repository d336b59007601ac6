package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TrackingIDPrefix is the handle prefix every tracking ID carries.
const TrackingIDPrefix = "hdl:21.14100/"

// GenerateTrackingID returns a fresh tracking ID: the handle prefix
// followed by a random UUID.
func GenerateTrackingID() string {
	return TrackingIDPrefix + uuid.NewString()
}

// ValidateTrackingID checks that the tracking_id attribute starts with
// the handle prefix and is followed by a lowercase UUID.
func ValidateTrackingID(trackingID string) error {
	suffix, ok := strings.CutPrefix(trackingID, TrackingIDPrefix)
	if !ok {
		return ErrInvalidValue.Msg(fmt.Sprintf(
			"the tracking_id attribute must start with %q, received %q",
			TrackingIDPrefix, trackingID))
	}
	parsed, err := uuid.Parse(suffix)
	if err != nil || parsed.String() != suffix {
		return ErrInvalidValue.Msg(fmt.Sprintf(
			"the tracking_id attribute must be %q followed by a lowercase UUID, received %q",
			TrackingIDPrefix, trackingID))
	}
	return nil
}
