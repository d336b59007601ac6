package validation

import (
	"fmt"

	"github.com/climforge/forcingval/internal/cvs"
)

// AssertConsistentWithSourceID checks the attributes a source ID
// determines. For each dependent key the user-supplied value must
// exactly match the value the CVs record for that source ID; the
// mismatch message shows both values and the determinant that produced
// the expectation.
func AssertConsistentWithSourceID(store *cvs.CVs, sourceID string, userValues map[string]string) error {
	entry, err := store.SourceIDEntries.Get(sourceID)
	if err != nil {
		return err
	}

	determined := map[string]string{
		"contact":          entry.Values.Contact,
		"further_info_url": entry.Values.FurtherInfoURL,
		"institution_id":   entry.Values.InstitutionID,
		"license_id":       entry.Values.LicenseID,
		"mip_era":          entry.Values.MIPEra,
		"source_version":   entry.Values.SourceVersion,
	}

	for key, userValue := range userValues {
		cvValue, ok := determined[key]
		if !ok {
			continue
		}
		if userValue != cvValue {
			return ErrInconsistentWithCVs.Msg(fmt.Sprintf(
				"for %s=%q the CVs require %s=%q, received %q",
				"source_id", sourceID, key, cvValue, userValue))
		}
	}
	return nil
}
