package cvs

import (
	"github.com/tidwall/gjson"
)

// InstitutionIDFilename is the name of the CV file holding institution IDs.
const InstitutionIDFilename = "input4MIPs_institution_id.json"

// parseInstitutionIDs structures the raw institution ID CV. Historical
// CV snapshots store either a bare array or an object wrapping the
// array under "institution_id"; both forms are accepted.
func parseInstitutionIDs(raw string) ([]string, error) {
	if err := checkRawAgainstSchema(InstitutionIDFilename, raw, institutionIDSchema); err != nil {
		return nil, err
	}

	parsed := gjson.Parse(raw)
	if parsed.IsObject() {
		parsed = parsed.Get("institution_id")
	}

	var ids []string
	for _, item := range parsed.Array() {
		ids = append(ids, item.String())
	}
	if !unique(ids) {
		return nil, NonUniqueError("the institution_id values are not unique", ids)
	}
	return ids, nil
}
