package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ValidateEntry checks one entry against the file it describes. The
// hash check comes first: an entry whose file has changed underneath
// it describes nothing.
func ValidateEntry(entry *Entry) error {
	sha, err := FileHashSHA256(entry.Filepath)
	if err != nil {
		return err
	}
	if sha != entry.SHA256 {
		return ErrHashMismatch.Msg(fmt.Sprintf(
			"entry records sha256 %s but %s hashes to %s",
			entry.SHA256, entry.Filepath, sha))
	}
	return entry.Validate()
}

// ValidateEntries validates every not-yet-validated entry in parallel
// and returns the full set with the tri-state flag settled. Entries
// already carrying a verdict pass through untouched. Tracking-ID
// duplicates fail the whole call immediately; everything else is
// per-entry.
func ValidateEntries(ctx context.Context, entries []*Entry, nWorkers int) ([]*Entry, error) {
	trackingIDs := make([]string, len(entries))
	for i, e := range entries {
		trackingIDs[i] = e.TrackingID
	}
	if err := assertUniqueTrackingIDs(trackingIDs); err != nil {
		return nil, err
	}

	var toValidate []*Entry
	for _, e := range entries {
		if e.ValidatedInput4MIPs == nil {
			toValidate = append(toValidate, e)
		}
	}
	log.Info().
		Int("entries", len(toValidate)).
		Int("workers", nWorkers).
		Msg("validating database entries")

	if nWorkers < 1 {
		nWorkers = 1
	}
	jobs := make(chan *Entry)
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				verdict := true
				if err := ValidateEntry(e); err != nil {
					log.Error().Err(err).Str("file", e.Filepath).Msg("entry failed validation")
					verdict = false
				}
				e.ValidatedInput4MIPs = &verdict
			}
		}()
	}

loop:
	for _, e := range toValidate {
		select {
		case <-ctx.Done():
			break loop
		case jobs <- e:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, ErrDatabase.MsgErr("validation interrupted", err)
	}
	return entries, nil
}
