package validation

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/drs"
	"github.com/climforge/forcingval/internal/inference"
)

// DRSMismatch records one disagreement between a file's path and the
// metadata recorded in the file's own attributes.
type DRSMismatch struct {
	// Key is the metadata key that disagrees, or "filename" when the
	// whole filename does not match the one the DRS demands.
	Key string `json:"key"`

	// Where says which part of the path disagrees, "directory" or
	// "filename".
	Where string `json:"where"`

	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (m DRSMismatch) String() string {
	return fmt.Sprintf("%s (in %s): expected %q, found %q", m.Key, m.Where, m.Expected, m.Actual)
}

// DRSConsistencyMismatches compares a file's on-disk path against the
// metadata attrs carries. The directory is decomposed per key via the
// DRS directory template; the filename is recomputed from the
// attributes and compared whole. Keys the attributes do not carry
// (e.g. version, which lives only in the path) are skipped.
func DRSConsistencyMismatches(
	d *drs.DataReferenceSyntax,
	path string,
	attrs map[string]string,
	timeStart, timeEnd *time.Time,
	frequencyMetadataKey string,
) ([]DRSMismatch, error) {
	extracted, err := d.ExtractMetadataFromPath(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	var mismatches []DRSMismatch
	for key, actual := range extracted {
		if key == drs.RootDataDirKey {
			continue
		}
		raw, ok := attrs[key]
		if !ok {
			continue
		}
		expected := drs.ApplyKnownReplacements(raw)
		if actual != expected {
			mismatches = append(mismatches, DRSMismatch{
				Key: key, Where: "directory", Expected: expected, Actual: actual,
			})
		}
	}

	expectedName, err := expectedFilename(d, attrs, extracted, timeStart, timeEnd, frequencyMetadataKey)
	if err != nil {
		return nil, err
	}
	if actual := filepath.Base(path); actual != expectedName {
		mismatches = append(mismatches, DRSMismatch{
			Key: "filename", Where: "filename", Expected: expectedName, Actual: actual,
		})
	}

	return mismatches, nil
}

// expectedFilename regenerates the filename the DRS demands for the
// file's attributes. Keys the attributes do not carry fall back to the
// values extracted from the directory, so path-only keys like version
// still resolve.
func expectedFilename(
	d *drs.DataReferenceSyntax,
	attrs map[string]string,
	extracted map[string]string,
	timeStart, timeEnd *time.Time,
	frequencyMetadataKey string,
) (string, error) {
	subs, err := drs.ParseTemplate(d.FilenameTemplate)
	if err != nil {
		return "", err
	}

	metadata := make(map[string]string, len(attrs))
	for k, v := range attrs {
		metadata[k] = drs.ApplyKnownReplacements(v)
	}
	for k, v := range extracted {
		if k == drs.RootDataDirKey {
			continue
		}
		if _, ok := metadata[k]; !ok {
			metadata[k] = v
		}
	}

	if drs.KeyRequiredForSubstitutions("time_range", subs) && (timeStart == nil || timeEnd == nil) {
		return "", drs.ErrTimeRangeRequired.Msg(fmt.Sprintf(
			"both timeStart and timeEnd must be provided, received timeStart=%v timeEnd=%v",
			timeStart, timeEnd))
	}
	if drs.KeyInSubstitutions("time_range", subs) && timeStart != nil && timeEnd != nil {
		timeRange, err := inference.CreateTimeRange(*timeStart, *timeEnd, metadata[frequencyMetadataKey], "-")
		if err != nil {
			return "", err
		}
		metadata["time_range"] = timeRange
	}

	return drs.ApplySubstitutions(d.FilenameTemplate, subs, metadata, true)
}

// TreeValidationResult runs the file-level checks plus the
// DRS-consistency checks for one file in a tree rooted at the DRS root
// data directory. Each DRS mismatch is recorded as its own failed
// check so the aggregate report names every disagreeing key.
func TreeValidationResult(
	ds *dataset.Dataset,
	path string,
	store *cvs.CVs,
	opts FileCheckOptions,
) *ValidationResultsStore {
	vrs := DatasetValidationResult(ds, store, opts)

	var timeStart, timeEnd *time.Time
	if ds.HasDim(opts.TimeDimension) {
		start, end, err := inference.InferTimeStartEnd(
			ds, opts.FrequencyMetadataKeys.FrequencyMetadataKey,
			opts.FrequencyMetadataKeys.NoTimeAxisFrequency, opts.TimeDimension)
		if err != nil {
			vrs.Wrap("Infer the file's time range", func() error { return err })
			return vrs
		}
		timeStart, timeEnd = start, end
	}

	mismatches, err := DRSConsistencyMismatches(
		&store.DRS, path, ds.Attrs, timeStart, timeEnd,
		opts.FrequencyMetadataKeys.FrequencyMetadataKey)
	if err != nil {
		vrs.Wrap("Validate consistency between the path and the DRS", func() error { return err })
		return vrs
	}
	for _, m := range mismatches {
		mismatch := m
		vrs.Wrap(
			fmt.Sprintf("Validate the path against the DRS for key %q", mismatch.Key),
			func() error { return ErrDRSInconsistent.Msg(mismatch.String()) })
	}

	return vrs
}
