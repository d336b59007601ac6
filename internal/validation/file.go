package validation

import (
	"fmt"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/inference"
)

// FileCheckOptions carries the knobs dataset validation needs beyond
// the dataset and the CVs.
type FileCheckOptions struct {
	FrequencyMetadataKeys inference.FrequencyMetadataKeys
	TimeDimension         string
	BndsCoordIndicators   []string
}

// DefaultFileCheckOptions returns the conventional settings: the
// "frequency" attribute, "fx" for datasets without a time axis, a
// "time" dimension and the usual bounds-variable indicators.
func DefaultFileCheckOptions() FileCheckOptions {
	return FileCheckOptions{
		FrequencyMetadataKeys: inference.DefaultFrequencyMetadataKeys(),
		TimeDimension:         "time",
		BndsCoordIndicators:   []string{"bnds", "bounds"},
	}
}

// ValidateAttribute looks up attribute in the dataset and runs fn on
// its value. A missing key is reported as ErrMissingAttribute so
// callers can tell "absent" apart from "present but invalid".
func ValidateAttribute(ds *dataset.Dataset, attribute string, fn func(value string) error) error {
	value, ok := ds.Attr(attribute)
	if !ok {
		return ErrMissingAttribute.Msg(fmt.Sprintf("attribute %q", attribute))
	}
	return fn(value)
}

// DatasetValidationResult runs every file-level check against the
// dataset and returns the results store. Individual failures are
// accumulated, never propagated, so the caller sees all problems in
// one pass; call RaiseIfErrors on the result to turn failures into an
// error.
func DatasetValidationResult(ds *dataset.Dataset, store *cvs.CVs, opts FileCheckOptions) *ValidationResultsStore {
	vrs := NewValidationResultsStore()

	attributeChecks := []struct {
		attribute string
		fn        func(value string) error
	}{
		{"Conventions", ValidateConventions},
		{"creation_date", ValidateCreationDate},
		{"tracking_id", ValidateTrackingID},
		{"variable_id", func(value string) error {
			return validateVariableIDAgainstDataset(ds, value, opts.BndsCoordIndicators)
		}},
		{"activity_id", func(value string) error {
			return AssertInCVs(value, "activity_id",
				store.ActivityIDEntries.ActivityIDs(), store.RawLoader.String())
		}},
		{"institution_id", func(value string) error {
			return AssertInCVs(value, "institution_id",
				store.InstitutionIDs, store.RawLoader.String())
		}},
		{"license_id", func(value string) error {
			return AssertInCVs(value, "license_id",
				store.LicenseEntries.LicenseIDs(), store.RawLoader.String())
		}},
		{"source_id", func(value string) error {
			return AssertInCVs(value, "source_id",
				store.SourceIDEntries.SourceIDs(), store.RawLoader.String())
		}},
		{opts.FrequencyMetadataKeys.FrequencyMetadataKey, func(value string) error {
			return validateFrequencyAgainstTimeAxis(ds, value, opts)
		}},
	}
	for _, check := range attributeChecks {
		attribute, fn := check.attribute, check.fn
		vrs.Wrap(fmt.Sprintf("Validate the %q attribute", attribute), func() error {
			return ValidateAttribute(ds, attribute, fn)
		})
	}

	vrs.Wrap("Validate consistency with the source_id entry in the CVs", func() error {
		sourceID, ok := ds.Attr("source_id")
		if !ok {
			return ErrMissingAttribute.Msg("attribute \"source_id\"")
		}
		return AssertConsistentWithSourceID(store, sourceID, ds.Attrs)
	})

	return vrs
}

// validateVariableIDAgainstDataset resolves the dataset's single data
// variable and defers to ValidateVariableID.
func validateVariableIDAgainstDataset(ds *dataset.Dataset, variableID string, bndsIndicators []string) error {
	dataVariables := ds.DataVariables(bndsIndicators)
	if len(dataVariables) != 1 {
		return ErrInvalidValue.Msg(fmt.Sprintf(
			"expected exactly one data variable, found %d: %v",
			len(dataVariables), dataVariables))
	}
	return ValidateVariableID(variableID, dataVariables[0])
}

// validateFrequencyAgainstTimeAxis infers the frequency from the
// dataset's time axis and requires the declared value to match.
func validateFrequencyAgainstTimeAxis(ds *dataset.Dataset, declared string, opts FileCheckOptions) error {
	// Fixed fields have neither a time axis nor time bounds; there is
	// nothing to derive bounds information from.
	var bounds inference.BoundsInfo
	if ds.HasDim(opts.TimeDimension) {
		var err error
		bounds, err = inference.BoundsInfoFromDataset(ds, opts.TimeDimension)
		if err != nil {
			return err
		}
	}
	inferred, err := inference.InferFrequency(
		ds, opts.FrequencyMetadataKeys.NoTimeAxisFrequency, opts.TimeDimension, bounds)
	if err != nil {
		return err
	}
	if declared != inferred {
		return ErrInvalidValue.Msg(fmt.Sprintf(
			"the %s attribute is %q but the time axis implies %q",
			opts.FrequencyMetadataKeys.FrequencyMetadataKey, declared, inferred))
	}
	return nil
}
