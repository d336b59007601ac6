package drs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDRS() *DataReferenceSyntax {
	return &DataReferenceSyntax{
		DirectoryPathTemplate: "<activity_id>/<source_id>/<grid_label>/v<version>",
		DirectoryPathExample:  "input4MIPs/CR-CMIP-0-2-0/gn/v20240520",
		FilenameTemplate:      "<variable_id>_<source_id>[_<time_range>].nc",
		FilenameExample:       "co2_CR-CMIP-0-2-0_200001-201012.nc",
	}
}

func TestParseTemplate(t *testing.T) {
	subs, err := ParseTemplate("<variable_id>_<source_id>[_<time_range>].nc")
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, "<variable_id>", subs[0].StringToReplace)
	assert.Equal(t, []string{"variable_id"}, subs[0].RequiredMetadata)
	assert.Equal(t, "{variable_id}", subs[0].ReplacementString)
	assert.False(t, subs[0].Optional)

	assert.Equal(t, "[_<time_range>]", subs[2].StringToReplace)
	assert.Equal(t, []string{"time_range"}, subs[2].RequiredMetadata)
	assert.Equal(t, "_{time_range}", subs[2].ReplacementString)
	assert.True(t, subs[2].Optional)
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"nested optional", "<a>[[_<b>]]"},
		{"optional inside placeholder", "<a[_<b>]>"},
		{"nested placeholder", "<a<b>>"},
		{"two placeholders in one optional", "[<a>_<b>]"},
		{"optional without placeholder", "<a>[_suffix]"},
		{"unterminated placeholder", "<a>_<b"},
		{"unterminated optional", "<a>[_<b>"},
		{"closing without opening placeholder", "a>_<b>"},
		{"closing without opening optional", "<a>]_<b>"},
		{"optional closed inside placeholder", "[_<a]>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.template)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTemplateParse)
		})
	}
}

func TestApplySubstitutions(t *testing.T) {
	template := "<variable_id>_<source_id>[_<time_range>].nc"
	subs, err := ParseTemplate(template)
	require.NoError(t, err)

	t.Run("all metadata present", func(t *testing.T) {
		res, err := ApplySubstitutions(template, subs, map[string]string{
			"variable_id": "co2",
			"source_id":   "CR-CMIP-0-2-0",
			"time_range":  "200001-201012",
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "co2_CR-CMIP-0-2-0_200001-201012.nc", res)
	})

	t.Run("optional metadata absent deletes the section", func(t *testing.T) {
		res, err := ApplySubstitutions(template, subs, map[string]string{
			"variable_id": "areacella",
			"source_id":   "CR-CMIP-0-2-0",
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "areacella_CR-CMIP-0-2-0.nc", res)
	})

	t.Run("required metadata absent fails", func(t *testing.T) {
		_, err := ApplySubstitutions(template, subs, map[string]string{
			"variable_id": "co2",
		}, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingMetadata)
		assert.Contains(t, err.Error(), "source_id")
	})

	t.Run("invalid characters rejected when validating", func(t *testing.T) {
		_, err := ApplySubstitutions(template, subs, map[string]string{
			"variable_id": "mole_fraction_of_co2",
			"source_id":   "CR-CMIP-0-2-0",
		}, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("invalid characters pass through when not validating", func(t *testing.T) {
		res, err := ApplySubstitutions(template, subs, map[string]string{
			"variable_id": "mole_fraction_of_co2",
			"source_id":   "CR-CMIP-0-2-0",
		}, false)
		require.NoError(t, err)
		assert.Equal(t, "mole_fraction_of_co2_CR-CMIP-0-2-0.nc", res)
	})
}

func TestApplySubstitutionsIdempotent(t *testing.T) {
	template := "<variable_id>_<source_id>[_<time_range>].nc"
	metadata := map[string]string{
		"variable_id": "co2",
		"source_id":   "CR-CMIP-0-2-0",
	}

	first := ""
	for i := 0; i < 3; i++ {
		subs, err := ParseTemplate(template)
		require.NoError(t, err)
		res, err := ApplySubstitutions(template, subs, metadata, true)
		require.NoError(t, err)
		if i == 0 {
			first = res
		}
		assert.Equal(t, first, res)
	}
}

func TestApplyKnownReplacements(t *testing.T) {
	assert.Equal(t, "v1-2-3", ApplyKnownReplacements("v1.2.3"))
	assert.Equal(t, "some-institution", ApplyKnownReplacements("some_institution"))
	assert.Equal(t, "already-clean", ApplyKnownReplacements("already-clean"))
}

func TestFilePath(t *testing.T) {
	d := testDRS()
	attrs := map[string]string{
		"activity_id": "input4MIPs",
		"source_id":   "CR-CMIP-0-2-0",
		"grid_label":  "gn",
		"variable_id": "co2",
		"frequency":   "mon",
	}

	t.Run("monthly data gets a time range", func(t *testing.T) {
		start := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2010, 12, 15, 0, 0, 0, 0, time.UTC)

		path, err := d.FilePath("/data/root", attrs, &start, &end, "frequency", "20240520")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(
			"/data/root", "input4MIPs", "CR-CMIP-0-2-0", "gn", "v20240520",
			"co2_CR-CMIP-0-2-0_200001-201012.nc",
		), path)
	})

	t.Run("fixed fields omit the time range", func(t *testing.T) {
		fxAttrs := map[string]string{
			"activity_id": "input4MIPs",
			"source_id":   "CR-CMIP-0-2-0",
			"grid_label":  "gn",
			"variable_id": "areacella",
			"frequency":   "fx",
		}
		path, err := d.FilePath("/data/root", fxAttrs, nil, nil, "frequency", "20240520")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(
			"/data/root", "input4MIPs", "CR-CMIP-0-2-0", "gn", "v20240520",
			"areacella_CR-CMIP-0-2-0.nc",
		), path)
	})

	t.Run("version defaults to today", func(t *testing.T) {
		path, err := d.FilePath("/data/root", attrs, nil, nil, "frequency", "")
		require.NoError(t, err)
		assert.Contains(t, path, "v"+time.Now().UTC().Format("20060102"))
	})

	t.Run("version is normalised", func(t *testing.T) {
		path, err := d.FilePath("/data/root", attrs, nil, nil, "frequency", "2024.05.20")
		require.NoError(t, err)
		assert.Contains(t, path, "v2024-05-20")
	})

	t.Run("missing required metadata", func(t *testing.T) {
		_, err := d.FilePath("/data/root", map[string]string{
			"activity_id": "input4MIPs",
			"source_id":   "CR-CMIP-0-2-0",
			"variable_id": "co2",
		}, nil, nil, "frequency", "20240520")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingMetadata)
	})
}

func TestFilePathEndToEnd(t *testing.T) {
	d := &DataReferenceSyntax{
		DirectoryPathTemplate: "<source_id>/<grid_label>",
		DirectoryPathExample:  "CR-CMIP-0-2-0/gn",
		FilenameTemplate:      "<variable_id>_<source_id>[_<time_range>].nc",
		FilenameExample:       "co2_CR-CMIP-0-2-0_200001-201012.nc",
	}
	attrs := map[string]string{
		"source_id":   "CR-CMIP-0-2-0",
		"grid_label":  "gn",
		"variable_id": "co2",
	}

	t.Run("no time axis", func(t *testing.T) {
		fxAttrs := map[string]string{"frequency": "fx"}
		for k, v := range attrs {
			fxAttrs[k] = v
		}
		path, err := d.FilePath("root", fxAttrs, nil, nil, "frequency", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("root", "CR-CMIP-0-2-0", "gn", "co2_CR-CMIP-0-2-0.nc"), path)
	})

	t.Run("monthly 2000 through 2010", func(t *testing.T) {
		monAttrs := map[string]string{"frequency": "mon"}
		for k, v := range attrs {
			monAttrs[k] = v
		}
		start := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2010, 12, 15, 0, 0, 0, 0, time.UTC)
		path, err := d.FilePath("root", monAttrs, &start, &end, "frequency", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("root", "CR-CMIP-0-2-0", "gn", "co2_CR-CMIP-0-2-0_200001-201012.nc"), path)
	})
}

func TestFilePathTimeRangeRequired(t *testing.T) {
	d := &DataReferenceSyntax{
		DirectoryPathTemplate: "<source_id>",
		DirectoryPathExample:  "CR-CMIP-0-2-0",
		FilenameTemplate:      "<variable_id>_<time_range>.nc",
		FilenameExample:       "co2_200001-201012.nc",
	}
	_, err := d.FilePath("/data/root", map[string]string{
		"source_id":   "CR-CMIP-0-2-0",
		"variable_id": "co2",
		"frequency":   "mon",
	}, nil, nil, "frequency", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeRangeRequired)
}

func TestExtractMetadataFromPath(t *testing.T) {
	d := testDRS()

	t.Run("round trip with the forward operation", func(t *testing.T) {
		start := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2010, 12, 15, 0, 0, 0, 0, time.UTC)
		attrs := map[string]string{
			"activity_id": "input4MIPs",
			"source_id":   "CR-CMIP-0-2-0",
			"grid_label":  "gn",
			"variable_id": "co2",
			"frequency":   "mon",
		}
		path, err := d.FilePath("/data/root", attrs, &start, &end, "frequency", "20240520")
		require.NoError(t, err)

		extracted, err := d.ExtractMetadataFromPath(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"activity_id": "input4MIPs",
			"source_id":   "CR-CMIP-0-2-0",
			"grid_label":  "gn",
			"version":     "20240520",
		}, extracted)
	})

	t.Run("root data dir is not reported", func(t *testing.T) {
		extracted, err := d.ExtractMetadataFromPath(
			filepath.Join("/a", "deeply", "nested", "root", "input4MIPs", "CR-CMIP-0-2-0", "gn", "v20240520"))
		require.NoError(t, err)
		assert.NotContains(t, extracted, RootDataDirKey)
		assert.Equal(t, "CR-CMIP-0-2-0", extracted["source_id"])
	})

	t.Run("mismatching directory", func(t *testing.T) {
		_, err := d.ExtractMetadataFromPath("/data/root/not/enough/segments")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPathMismatch)
	})

	t.Run("trailing segments are rejected", func(t *testing.T) {
		_, err := d.ExtractMetadataFromPath(
			filepath.Join("/data/root", "input4MIPs", "CR-CMIP-0-2-0", "gn", "v20240520", "extra"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPathMismatch)
	})

	t.Run("optional directory sections are not supported", func(t *testing.T) {
		od := &DataReferenceSyntax{
			DirectoryPathTemplate: "<source_id>[/<grid_label>]",
			DirectoryPathExample:  "CR-CMIP-0-2-0/gn",
			FilenameTemplate:      "<variable_id>.nc",
			FilenameExample:       "co2.nc",
		}
		_, err := od.ExtractMetadataFromPath("/data/root/CR-CMIP-0-2-0/gn")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOptionalNotSupported)
	})
}

func TestKeyHelpers(t *testing.T) {
	subs, err := ParseTemplate("<variable_id>_<source_id>[_<time_range>].nc")
	require.NoError(t, err)

	assert.True(t, KeyRequiredForSubstitutions("variable_id", subs))
	assert.False(t, KeyRequiredForSubstitutions("time_range", subs))
	assert.True(t, KeyInSubstitutions("time_range", subs))
	assert.False(t, KeyInSubstitutions("grid_label", subs))
}
