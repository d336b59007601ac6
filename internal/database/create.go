package database

import (
	"fmt"
	"path/filepath"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/inference"
)

// requiredAttrs maps entry fields filled verbatim from the dataset's
// global attributes to their attribute names.
var requiredAttrs = []string{
	"Conventions",
	"activity_id",
	"contact",
	"creation_date",
	"dataset_category",
	"frequency",
	"further_info_url",
	"grid_label",
	"institution_id",
	"license",
	"mip_era",
	"nominal_resolution",
	"realm",
	"region",
	"source_id",
	"source_version",
	"target_mip",
	"tracking_id",
	"variable_id",
}

const datetimeLayout = "2006-01-02T15:04:05Z"

// EntryFromDataset builds the database entry for one file: the file's
// global attributes, the time metadata inferred from its time axis, the
// version extracted from its DRS path, and the hash of its bytes.
func EntryFromDataset(
	ds *dataset.Dataset,
	path string,
	store *cvs.CVs,
	freqKeys inference.FrequencyMetadataKeys,
	timeDimension string,
) (*Entry, error) {
	attrs := ds.Attrs
	for _, name := range requiredAttrs {
		if _, ok := attrs[name]; !ok {
			return nil, ErrEntry.Msg(fmt.Sprintf(
				"cannot build an entry for %s, attribute %q is missing", path, name))
		}
	}

	sha, err := FileHashSHA256(path)
	if err != nil {
		return nil, err
	}

	extracted, err := store.DRS.ExtractMetadataFromPath(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	version, ok := extracted["version"]
	if !ok {
		return nil, ErrEntry.Msg(fmt.Sprintf(
			"the DRS directory template does not yield a version for %s", path))
	}

	entry := &Entry{
		Conventions:       attrs["Conventions"],
		ActivityID:        attrs["activity_id"],
		Contact:           attrs["contact"],
		CreationDate:      attrs["creation_date"],
		DatasetCategory:   attrs["dataset_category"],
		Frequency:         attrs["frequency"],
		FurtherInfoURL:    attrs["further_info_url"],
		GridLabel:         attrs["grid_label"],
		InstitutionID:     attrs["institution_id"],
		License:           attrs["license"],
		MIPEra:            attrs["mip_era"],
		NominalResolution: attrs["nominal_resolution"],
		Realm:             attrs["realm"],
		Region:            attrs["region"],
		SourceID:          attrs["source_id"],
		SourceVersion:     attrs["source_version"],
		TargetMIP:         attrs["target_mip"],
		TrackingID:        attrs["tracking_id"],
		VariableID:        attrs["variable_id"],
		Version:           version,
		Filepath:          path,
		SHA256:            sha,
		Comment:           optionalAttr(attrs, "comment"),
		Grid:              optionalAttr(attrs, "grid"),
		Institution:       optionalAttr(attrs, "institution"),
		LicenseID:         optionalAttr(attrs, "license_id"),
		Product:           optionalAttr(attrs, "product"),
		References:        optionalAttr(attrs, "references"),
		Source:            optionalAttr(attrs, "source"),
	}

	if err := setTimeFields(entry, ds, freqKeys, timeDimension); err != nil {
		return nil, err
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// setTimeFields populates datetime_start, datetime_end and time_range
// together, or leaves all three unset for fixed fields.
func setTimeFields(
	entry *Entry,
	ds *dataset.Dataset,
	freqKeys inference.FrequencyMetadataKeys,
	timeDimension string,
) error {
	start, end, err := inference.InferTimeStartEnd(
		ds, freqKeys.FrequencyMetadataKey, freqKeys.NoTimeAxisFrequency, timeDimension)
	if err != nil {
		return err
	}
	if start == nil || end == nil {
		return nil
	}

	timeRange, err := inference.CreateTimeRange(*start, *end, entry.Frequency, "-")
	if err != nil {
		return err
	}

	startStr := start.UTC().Format(datetimeLayout)
	endStr := end.UTC().Format(datetimeLayout)
	entry.DatetimeStart = &startStr
	entry.DatetimeEnd = &endStr
	entry.TimeRange = &timeRange
	return nil
}

func optionalAttr(attrs map[string]string, name string) *string {
	if v, ok := attrs[name]; ok {
		return &v
	}
	return nil
}
