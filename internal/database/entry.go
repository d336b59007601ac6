package database

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Entry is the flat record describing one file. One entry is persisted
// per file as one canonical JSON document.
//
// DatetimeStart, DatetimeEnd and TimeRange are nil together (fixed
// fields have no time axis) or set together; Validate enforces this.
// ValidatedInput4MIPs is tri-state: nil means not yet validated, the
// validation pass flips it to true or false.
type Entry struct {
	Conventions       string  `json:"Conventions" validate:"required"`
	ActivityID        string  `json:"activity_id" validate:"required"`
	Contact           string  `json:"contact" validate:"required"`
	CreationDate      string  `json:"creation_date" validate:"required"`
	DatasetCategory   string  `json:"dataset_category" validate:"required"`
	DatetimeEnd       *string `json:"datetime_end"`
	DatetimeStart     *string `json:"datetime_start"`
	Frequency         string  `json:"frequency" validate:"required"`
	FurtherInfoURL    string  `json:"further_info_url" validate:"required"`
	GridLabel         string  `json:"grid_label" validate:"required"`
	InstitutionID     string  `json:"institution_id" validate:"required"`
	License           string  `json:"license" validate:"required"`
	MIPEra            string  `json:"mip_era" validate:"required"`
	NominalResolution string  `json:"nominal_resolution" validate:"required"`
	Realm             string  `json:"realm" validate:"required"`
	Region            string  `json:"region" validate:"required"`
	SourceID          string  `json:"source_id" validate:"required"`
	SourceVersion     string  `json:"source_version" validate:"required"`
	TargetMIP         string  `json:"target_mip" validate:"required"`
	TimeRange         *string `json:"time_range"`
	TrackingID        string  `json:"tracking_id" validate:"required"`
	VariableID        string  `json:"variable_id" validate:"required"`
	Version           string  `json:"version" validate:"required"`

	// Where the file sits and what its bytes hashed to when the entry
	// was created.
	Filepath string `json:"filepath" validate:"required"`
	SHA256   string `json:"sha256" validate:"required,len=64,hexadecimal"`

	Comment     *string `json:"comment"`
	Grid        *string `json:"grid"`
	Institution *string `json:"institution"`
	LicenseID   *string `json:"license_id"`
	Product     *string `json:"product"`
	References  *string `json:"references"`
	Source      *string `json:"source"`

	ValidatedInput4MIPs *bool `json:"validated_input4mips"`
}

var entryValidator = validator.New()

// Validate checks the entry's field-level rules and the time-field
// invariant.
func (e *Entry) Validate() error {
	if err := entryValidator.Struct(e); err != nil {
		return ErrEntry.MsgErr("entry field validation failed", err)
	}

	timeFieldsSet := 0
	for _, f := range []*string{e.DatetimeStart, e.DatetimeEnd, e.TimeRange} {
		if f != nil {
			timeFieldsSet++
		}
	}
	if timeFieldsSet != 0 && timeFieldsSet != 3 {
		return ErrEntry.Msg(fmt.Sprintf(
			"datetime_start, datetime_end and time_range must be all unset or all set, "+
				"received datetime_start=%v datetime_end=%v time_range=%v",
			strOrNil(e.DatetimeStart), strOrNil(e.DatetimeEnd), strOrNil(e.TimeRange)))
	}
	return nil
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
