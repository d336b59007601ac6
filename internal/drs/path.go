package drs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/climforge/forcingval/internal/inference"
)

// FilePath computes the full path at which a file should be written
// according to the DRS.
//
// availableAttributes must provide every metadata key the templates
// require, with two special cases: "version" defaults to today's UTC
// date formatted YYYYMMDD when the templates need it and version is
// empty, and "time_range" is synthesised from timeStart/timeEnd and the
// frequency attribute named by frequencyMetadataKey.
func (d *DataReferenceSyntax) FilePath(
	rootDataDir string,
	availableAttributes map[string]string,
	timeStart, timeEnd *time.Time,
	frequencyMetadataKey string,
	version string,
) (string, error) {
	// Known replacements first, so values like "v1.2.3" become DRS-legal.
	metadata := make(map[string]string, len(availableAttributes))
	for k, v := range availableAttributes {
		metadata[k] = ApplyKnownReplacements(v)
	}

	directorySubs, err := ParseTemplate(d.DirectoryPathTemplate)
	if err != nil {
		return "", err
	}
	filenameSubs, err := ParseTemplate(d.FilenameTemplate)
	if err != nil {
		return "", err
	}
	allSubs := append(append([]Substitution{}, directorySubs...), filenameSubs...)

	if KeyInSubstitutions("version", allSubs) {
		if version == "" {
			version = time.Now().UTC().Format("20060102")
		}
		metadata["version"] = ApplyKnownReplacements(version)
	}

	timeInformationProvided := timeStart != nil && timeEnd != nil
	if KeyRequiredForSubstitutions("time_range", allSubs) && !timeInformationProvided {
		return "", ErrTimeRangeRequired.Msg(fmt.Sprintf(
			"both timeStart and timeEnd must be provided, received timeStart=%v timeEnd=%v",
			timeStart, timeEnd))
	}
	if KeyInSubstitutions("time_range", allSubs) && timeInformationProvided {
		// The rules for time-range creation cannot be read off the DRS
		// as written, so they live with the frequency inference.
		timeRange, err := inference.CreateTimeRange(*timeStart, *timeEnd, metadata[frequencyMetadataKey], "-")
		if err != nil {
			return "", err
		}
		metadata["time_range"] = timeRange
	}

	directory, err := ApplySubstitutions(d.DirectoryPathTemplate, directorySubs, metadata, true)
	if err != nil {
		return "", err
	}
	filename, err := ApplySubstitutions(d.FilenameTemplate, filenameSubs, metadata, true)
	if err != nil {
		return "", err
	}

	generated := filepath.Join(directory, filename)
	if err := validateGeneratedPath(generated); err != nil {
		return "", err
	}

	return filepath.Join(rootDataDir, generated), nil
}

// validateGeneratedPath checks every component of the generated path,
// excluding the file suffix, against the path character rules.
func validateGeneratedPath(generated string) error {
	withoutSuffix := strings.TrimSuffix(generated, filepath.Ext(generated))
	for _, component := range strings.Split(withoutSuffix, string(filepath.Separator)) {
		if component == "" {
			continue
		}
		if err := validatePathComponent(component); err != nil {
			return err
		}
	}
	return nil
}
