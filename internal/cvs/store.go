package cvs

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/climforge/forcingval/internal/drs"
)

// CVs is the in-memory controlled-vocabulary store for one validation
// or writing session. Loaded once, immutable afterwards, and safe to
// share read-only across concurrent per-file tasks.
type CVs struct {
	// RawLoader is the loader the store was built from. Kept so error
	// messages can say which CV source produced the legal values.
	RawLoader RawLoader

	ActivityIDEntries *ActivityIDEntries
	InstitutionIDs    []string
	LicenseEntries    *LicenseEntries
	SourceIDEntries   *SourceIDEntries
	DRS               drs.DataReferenceSyntax
}

// Load builds a CV store from a raw loader.
func Load(loader RawLoader) (*CVs, error) {
	rawActivity, err := loader.LoadRaw(ActivityIDFilename)
	if err != nil {
		return nil, err
	}
	activityIDs, err := parseActivityIDEntries(rawActivity)
	if err != nil {
		return nil, err
	}

	rawInstitution, err := loader.LoadRaw(InstitutionIDFilename)
	if err != nil {
		return nil, err
	}
	institutionIDs, err := parseInstitutionIDs(rawInstitution)
	if err != nil {
		return nil, err
	}

	rawLicense, err := loader.LoadRaw(LicenseFilename)
	if err != nil {
		return nil, err
	}
	licenses, err := parseLicenseEntries(rawLicense)
	if err != nil {
		return nil, err
	}

	rawSourceID, err := loader.LoadRaw(SourceIDFilename)
	if err != nil {
		return nil, err
	}
	sourceIDs, err := parseSourceIDEntries(rawSourceID)
	if err != nil {
		return nil, err
	}

	rawDRS, err := loader.LoadRaw(drs.DataReferenceSyntaxFilename)
	if err != nil {
		return nil, err
	}
	parsedDRS, err := parseDRS(rawDRS)
	if err != nil {
		return nil, err
	}

	return &CVs{
		RawLoader:         loader,
		ActivityIDEntries: activityIDs,
		InstitutionIDs:    institutionIDs,
		LicenseEntries:    licenses,
		SourceIDEntries:   sourceIDs,
		DRS:               parsedDRS,
	}, nil
}

// LoadFromSource resolves a CV-source string and loads the store.
func LoadFromSource(cvSource string) (*CVs, error) {
	loader, err := GetRawCVLoader(cvSource)
	if err != nil {
		return nil, err
	}
	return Load(loader)
}

func parseDRS(raw string) (drs.DataReferenceSyntax, error) {
	if err := checkRawAgainstSchema(drs.DataReferenceSyntaxFilename, raw, drsSchema); err != nil {
		return drs.DataReferenceSyntax{}, err
	}
	var d drs.DataReferenceSyntax
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return drs.DataReferenceSyntax{}, ErrCVLoad.MsgErr("could not parse "+drs.DataReferenceSyntaxFilename, err)
	}
	return d, nil
}

// Validate checks the loaded CVs for internal consistency: entry fields
// present, URLs shaped like URLs, and the DRS templates parseable.
func (c *CVs) Validate() error {
	v := validator.New()

	for _, entry := range c.ActivityIDEntries.Entries() {
		if err := v.Struct(entry.Values); err != nil {
			return ErrCVLoad.MsgErr(
				fmt.Sprintf("activity_id entry %q is invalid", entry.ActivityID), err)
		}
	}
	for _, entry := range c.LicenseEntries.Entries() {
		if err := v.Struct(entry.Values); err != nil {
			return ErrCVLoad.MsgErr(
				fmt.Sprintf("license entry %q is invalid", entry.LicenseID), err)
		}
	}
	for _, entry := range c.SourceIDEntries.Entries() {
		if err := v.Struct(entry.Values); err != nil {
			return ErrCVLoad.MsgErr(
				fmt.Sprintf("source_id entry %q is invalid", entry.SourceID), err)
		}
	}
	if err := v.Struct(c.DRS); err != nil {
		return ErrCVLoad.MsgErr("DRS definition is invalid", err)
	}
	if _, err := drs.ParseTemplate(c.DRS.DirectoryPathTemplate); err != nil {
		return err
	}
	if _, err := drs.ParseTemplate(c.DRS.FilenameTemplate); err != nil {
		return err
	}
	return nil
}
