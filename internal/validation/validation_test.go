package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNeverPropagates(t *testing.T) {
	vrs := NewValidationResultsStore()

	vrs.Wrap("always fails", func() error {
		return errors.New("boom")
	})
	vrs.Wrap("always panics", func() error {
		panic("boom")
	})
	vrs.Wrap("passes", func() error {
		return nil
	})

	assert.Equal(t, 3, vrs.Checks())
	assert.Len(t, vrs.Failures(), 2)
}

func TestRaiseIfErrorsEmpty(t *testing.T) {
	vrs := NewValidationResultsStore()
	vrs.Wrap("passes", func() error { return nil })
	assert.NoError(t, vrs.RaiseIfErrors())
}

func TestAggregateErrorCompleteness(t *testing.T) {
	vrs := NewValidationResultsStore()
	for i := 1; i <= 3; i++ {
		desc := fmt.Sprintf("check number %d", i)
		msg := fmt.Sprintf("failure number %d", i)
		vrs.Wrap(desc, func() error { return errors.New(msg) })
	}

	err := vrs.RaiseIfErrors()
	require.ErrorIs(t, err, ErrValidation)
	for i := 1; i <= 3; i++ {
		assert.Contains(t, err.Error(), fmt.Sprintf("check number %d", i))
		assert.Contains(t, err.Error(), fmt.Sprintf("failure number %d", i))
	}

	// Report ordering is part of the contract, reports must diff
	// cleanly across runs.
	failures := vrs.Failures()
	require.Len(t, failures, 3)
	for i, f := range failures {
		assert.Equal(t, fmt.Sprintf("check number %d", i+1), f.Description)
	}
}

func TestValidateCreationDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", "2024-05-20T12:30:00Z", true},
		{"invalid month despite matching pattern", "2024-13-01T00:00:00Z", false},
		{"invalid day despite matching pattern", "2024-02-30T00:00:00Z", false},
		{"missing Z", "2024-05-20T12:30:00", false},
		{"offset instead of Z", "2024-05-20T12:30:00+00:00", false},
		{"date only", "2024-05-20", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreationDate(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidValue)
				assert.Contains(t, err.Error(), tt.value)
			}
		})
	}
}

func TestValidateTrackingID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", "hdl:21.14100/e3385e8c-08d9-4524-8377-49feb3eaa05e", true},
		{"not a uuid", "hdl:21.14100/not-a-uuid", false},
		{"missing prefix", "e3385e8c-08d9-4524-8377-49feb3eaa05e", false},
		{"uppercase uuid", "hdl:21.14100/E3385E8C-08D9-4524-8377-49FEB3EAA05E", false},
		{"trailing garbage", "hdl:21.14100/e3385e8c-08d9-4524-8377-49feb3eaa05e ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrackingID(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidValue)
			}
		})
	}
}

func TestGenerateTrackingID(t *testing.T) {
	id := GenerateTrackingID()
	assert.NoError(t, ValidateTrackingID(id))
}

func TestValidateVariableID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateVariableID("mole_fraction_of_co2", "mole_fraction_of_co2"))
	})

	t.Run("invalid characters", func(t *testing.T) {
		err := ValidateVariableID("co2-blah", "co2-blah")
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "'-'")
	})

	t.Run("name mismatch", func(t *testing.T) {
		err := ValidateVariableID("co2", "ch4")
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), `"ch4"`)
	})

	t.Run("both violations reported", func(t *testing.T) {
		err := ValidateVariableID("co 2", "ch4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid characters")
		assert.Contains(t, err.Error(), "must match the variable name")
	})
}

func TestValidateConventions(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"CF-1.8", true},
		{"CF-1.7", true},
		{"CF 1.7", false},
		{"1.7", false},
		{"cf-1.7", false},
	}
	for _, tt := range tests {
		err := ValidateConventions(tt.value)
		if tt.valid {
			assert.NoError(t, err, tt.value)
		} else {
			assert.ErrorIs(t, err, ErrInvalidValue, tt.value)
		}
	}
}

func TestAssertInCVs(t *testing.T) {
	legal := []string{"input4MIPs", "CMIP"}

	assert.NoError(t, AssertInCVs("CMIP", "activity_id", legal, "LocalRawLoader(dir=/cvs)"))

	err := AssertInCVs("junk", "activity_id", legal, "LocalRawLoader(dir=/cvs)")
	require.ErrorIs(t, err, ErrNotInCVs)
	assert.Contains(t, err.Error(), `activity_id="junk"`)
	assert.Contains(t, err.Error(), "input4MIPs")
	assert.Contains(t, err.Error(), "LocalRawLoader(dir=/cvs)")
}
