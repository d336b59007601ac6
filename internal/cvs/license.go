package cvs

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LicenseFilename is the name of the CV file holding license entries.
const LicenseFilename = "input4MIPs_license.json"

// LicenseValues are the values a license ID defines.
type LicenseValues struct {
	Conditions        string `json:"conditions" validate:"required"`
	ExceptionsContact string `json:"exceptions_contact,omitempty"`
	LicenseURL        string `json:"license_url" validate:"required,url"`
	LongName          string `json:"long_name" validate:"required"`
}

// LicenseEntry is a single license entry.
type LicenseEntry struct {
	LicenseID string        `json:"license_id"`
	Values    LicenseValues `json:"values"`
}

// LicenseEntries is the container for license entries.
type LicenseEntries struct {
	entries []LicenseEntry
}

func NewLicenseEntries(entries []LicenseEntry) (*LicenseEntries, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.LicenseID
	}
	if !unique(ids) {
		return nil, NonUniqueError("the license_id's of the entries are not unique", ids)
	}
	return &LicenseEntries{entries: entries}, nil
}

func (l *LicenseEntries) Get(licenseID string) (LicenseEntry, error) {
	for _, e := range l.entries {
		if e.LicenseID == licenseID {
			return e, nil
		}
	}
	return LicenseEntry{}, ErrNoEntry.Msg(fmt.Sprintf(
		"no license entry %q, known license_ids: %v", licenseID, l.LicenseIDs()))
}

func (l *LicenseEntries) LicenseIDs() []string {
	ids := make([]string, len(l.entries))
	for i, e := range l.entries {
		ids[i] = e.LicenseID
	}
	return ids
}

func (l *LicenseEntries) Entries() []LicenseEntry {
	return l.entries
}

func (l *LicenseEntries) Unstructured() map[string]LicenseValues {
	out := make(map[string]LicenseValues, len(l.entries))
	for _, e := range l.entries {
		out[e.LicenseID] = e.Values
	}
	return out
}

func parseLicenseEntries(raw string) (*LicenseEntries, error) {
	if err := checkRawAgainstSchema(LicenseFilename, raw, licenseSchema); err != nil {
		return nil, err
	}
	var unstructured map[string]LicenseValues
	if err := json.Unmarshal([]byte(raw), &unstructured); err != nil {
		return nil, ErrCVLoad.MsgErr("could not parse "+LicenseFilename, err)
	}
	entries := make([]LicenseEntry, 0, len(unstructured))
	for id, values := range unstructured {
		entries = append(entries, LicenseEntry{LicenseID: id, Values: values})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LicenseID < entries[j].LicenseID })
	return NewLicenseEntries(entries)
}
