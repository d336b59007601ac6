package cvs

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ActivityIDFilename is the name of the CV file holding activity IDs.
const ActivityIDFilename = "input4MIPs_activity_id.json"

// ActivityIDValues are the values an activity ID defines.
type ActivityIDValues struct {
	URL      string `json:"URL" validate:"required,url"`
	LongName string `json:"long_name" validate:"required"`
}

// ActivityIDEntry is a single activity ID entry.
type ActivityIDEntry struct {
	ActivityID string           `json:"activity_id"`
	Values     ActivityIDValues `json:"values"`
}

// ActivityIDEntries is the container for activity ID entries.
type ActivityIDEntries struct {
	entries []ActivityIDEntry
}

func NewActivityIDEntries(entries []ActivityIDEntry) (*ActivityIDEntries, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ActivityID
	}
	if !unique(ids) {
		return nil, NonUniqueError("the activity_id's of the entries are not unique", ids)
	}
	return &ActivityIDEntries{entries: entries}, nil
}

func (a *ActivityIDEntries) Get(activityID string) (ActivityIDEntry, error) {
	for _, e := range a.entries {
		if e.ActivityID == activityID {
			return e, nil
		}
	}
	return ActivityIDEntry{}, ErrNoEntry.Msg(fmt.Sprintf(
		"no activity_id entry %q, known activity_ids: %v", activityID, a.ActivityIDs()))
}

func (a *ActivityIDEntries) ActivityIDs() []string {
	ids := make([]string, len(a.entries))
	for i, e := range a.entries {
		ids[i] = e.ActivityID
	}
	return ids
}

func (a *ActivityIDEntries) Entries() []ActivityIDEntry {
	return a.entries
}

func (a *ActivityIDEntries) Unstructured() map[string]ActivityIDValues {
	out := make(map[string]ActivityIDValues, len(a.entries))
	for _, e := range a.entries {
		out[e.ActivityID] = e.Values
	}
	return out
}

func parseActivityIDEntries(raw string) (*ActivityIDEntries, error) {
	if err := checkRawAgainstSchema(ActivityIDFilename, raw, activityIDSchema); err != nil {
		return nil, err
	}
	var unstructured map[string]ActivityIDValues
	if err := json.Unmarshal([]byte(raw), &unstructured); err != nil {
		return nil, ErrCVLoad.MsgErr("could not parse "+ActivityIDFilename, err)
	}
	entries := make([]ActivityIDEntry, 0, len(unstructured))
	for id, values := range unstructured {
		entries = append(entries, ActivityIDEntry{ActivityID: id, Values: values})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ActivityID < entries[j].ActivityID })
	return NewActivityIDEntries(entries)
}
