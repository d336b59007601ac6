package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/climforge/forcingval/internal/common/canonicaljson"
	"github.com/climforge/forcingval/internal/cvs"
)

// DB is a flat-file database: one canonical JSON document per entry in
// a single directory. Documents sort and diff cleanly, which is the
// point of the format.
type DB struct {
	Dir string
}

// Open returns a DB over an existing directory.
func Open(dir string) (*DB, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ErrDatabase.MsgErr("could not open database directory", err)
	}
	if !info.IsDir() {
		return nil, ErrDatabase.Msg(dir + " is not a directory")
	}
	return &DB{Dir: dir}, nil
}

// Create makes a fresh database directory. The directory must not
// already exist; updates go through an Open'd DB instead.
func Create(dir string) (*DB, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, ErrDatabase.Msg(fmt.Sprintf(
			"database directory %s already exists, open it instead", dir))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ErrDatabase.MsgErr("could not create database directory", err)
	}
	return &DB{Dir: dir}, nil
}

// entryFilename derives the document name from the tracking ID, which
// is unique across a database. Handle separators are not filename-safe.
func entryFilename(trackingID string) string {
	sanitized := strings.NewReplacer(":", "_", "/", "_").Replace(trackingID)
	return sanitized + ".json"
}

// Save writes the entries, one document each. Tracking-ID uniqueness is
// checked first so a half-written database cannot hide a duplicate.
func (db *DB) Save(entries []*Entry) error {
	trackingIDs := make([]string, len(entries))
	for i, e := range entries {
		trackingIDs[i] = e.TrackingID
	}
	if err := assertUniqueTrackingIDs(trackingIDs); err != nil {
		return err
	}

	for _, e := range entries {
		doc, err := canonicaljson.Marshal(e)
		if err != nil {
			return ErrDatabase.MsgErr("could not serialise entry "+e.TrackingID, err)
		}
		name := filepath.Join(db.Dir, entryFilename(e.TrackingID))
		if err := os.WriteFile(name, doc, 0o644); err != nil {
			return ErrDatabase.MsgErr("could not write "+name, err)
		}
	}
	log.Info().Int("entries", len(entries)).Str("dir", db.Dir).Msg("saved database entries")
	return nil
}

// Load reads every entry document in the database directory, sorted by
// filename so the result is stable across runs.
func (db *DB) Load() ([]*Entry, error) {
	matches, err := filepath.Glob(filepath.Join(db.Dir, "*.json"))
	if err != nil {
		return nil, ErrDatabase.Err(err)
	}
	sort.Strings(matches)

	entries := make([]*Entry, 0, len(matches))
	trackingIDs := make([]string, 0, len(matches))
	for _, name := range matches {
		content, err := os.ReadFile(name)
		if err != nil {
			return nil, ErrDatabase.MsgErr("could not read "+name, err)
		}
		var e Entry
		if err := json.Unmarshal(content, &e); err != nil {
			return nil, ErrDatabase.MsgErr("could not parse "+name, err)
		}
		entries = append(entries, &e)
		trackingIDs = append(trackingIDs, e.TrackingID)
	}

	if err := assertUniqueTrackingIDs(trackingIDs); err != nil {
		return nil, err
	}
	return entries, nil
}

func assertUniqueTrackingIDs(trackingIDs []string) error {
	seen := make(map[string]bool, len(trackingIDs))
	for _, id := range trackingIDs {
		if seen[id] {
			return cvs.NonUniqueError(
				"tracking IDs for all entries should be unique", trackingIDs)
		}
		seen[id] = true
	}
	return nil
}
