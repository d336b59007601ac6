package cvs

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SourceIDFilename is the name of the CV file holding source IDs.
const SourceIDFilename = "input4MIPs_source_id.json"

// SourceIDValues are the values a source ID defines. A source ID is the
// CV's primary key: many other metadata fields are determined by it.
type SourceIDValues struct {
	Contact        string `json:"contact" validate:"required"`
	FurtherInfoURL string `json:"further_info_url,omitempty" validate:"omitempty,url"`
	InstitutionID  string `json:"institution_id" validate:"required"`
	LicenseID      string `json:"license_id" validate:"required"`
	MIPEra         string `json:"mip_era" validate:"required"`
	SourceVersion  string `json:"source_version" validate:"required"`
}

// SourceIDEntry is a single source ID entry.
type SourceIDEntry struct {
	SourceID string         `json:"source_id"`
	Values   SourceIDValues `json:"values"`
}

// SourceIDEntries is the container for source ID entries. Source IDs
// are unique within a container; construction fails otherwise.
type SourceIDEntries struct {
	entries []SourceIDEntry
}

func NewSourceIDEntries(entries []SourceIDEntry) (*SourceIDEntries, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.SourceID
	}
	if !unique(ids) {
		return nil, NonUniqueError("the source_id's of the entries are not unique", ids)
	}
	return &SourceIDEntries{entries: entries}, nil
}

func (s *SourceIDEntries) Get(sourceID string) (SourceIDEntry, error) {
	for _, e := range s.entries {
		if e.SourceID == sourceID {
			return e, nil
		}
	}
	return SourceIDEntry{}, ErrNoEntry.Msg(fmt.Sprintf(
		"no source_id entry %q, known source_ids: %v", sourceID, s.SourceIDs()))
}

func (s *SourceIDEntries) SourceIDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.SourceID
	}
	return ids
}

func (s *SourceIDEntries) Entries() []SourceIDEntry {
	return s.entries
}

func (s *SourceIDEntries) Len() int {
	return len(s.entries)
}

// Unstructured returns the raw CV form: a JSON object keyed by source ID.
func (s *SourceIDEntries) Unstructured() map[string]SourceIDValues {
	out := make(map[string]SourceIDValues, len(s.entries))
	for _, e := range s.entries {
		out[e.SourceID] = e.Values
	}
	return out
}

// parseSourceIDEntries structures the raw CV form, sorted by source ID
// for deterministic iteration.
func parseSourceIDEntries(raw string) (*SourceIDEntries, error) {
	if err := checkRawAgainstSchema(SourceIDFilename, raw, sourceIDSchema); err != nil {
		return nil, err
	}
	var unstructured map[string]SourceIDValues
	if err := json.Unmarshal([]byte(raw), &unstructured); err != nil {
		return nil, ErrCVLoad.MsgErr("could not parse "+SourceIDFilename, err)
	}
	entries := make([]SourceIDEntry, 0, len(unstructured))
	for id, values := range unstructured {
		entries = append(entries, SourceIDEntry{SourceID: id, Values: values})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].SourceID < entries[j].SourceID })
	return NewSourceIDEntries(entries)
}

func unique(values []string) bool {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
