package inference

import (
	"fmt"
	"strings"
	"time"

	"github.com/climforge/forcingval/internal/dataset"
)

// climatologyFrequencies are the frequency labels which denote a
// climatology rather than a continuous time series.
var climatologyFrequencies = map[string]bool{"monC": true}

// FormatDateForTimeRange formats one endpoint of a time range, with the
// resolution implied by the dataset's frequency.
func FormatDateForTimeRange(date time.Time, dsFrequency string) (string, error) {
	switch {
	case strings.HasPrefix(dsFrequency, "mon"):
		return date.Format("200601"), nil
	case strings.HasPrefix(dsFrequency, "yr"):
		return date.Format("2006"), nil
	case strings.HasPrefix(dsFrequency, "day"):
		return date.Format("20060102"), nil
	case strings.HasPrefix(dsFrequency, "3hr"):
		return date.Format("200601021504"), nil
	}
	return "", ErrUnsupportedFrequency.Msg(
		fmt.Sprintf("no time-range format for frequency %q", dsFrequency))
}

// CreateTimeRange builds the time-range string used in filenames and
// database records. Climatology frequencies get a "-clim" suffix.
func CreateTimeRange(timeStart, timeEnd time.Time, dsFrequency, startEndSeparator string) (string, error) {
	startFormatted, err := FormatDateForTimeRange(timeStart, dsFrequency)
	if err != nil {
		return "", err
	}
	endFormatted, err := FormatDateForTimeRange(timeEnd, dsFrequency)
	if err != nil {
		return "", err
	}

	res := startFormatted + startEndSeparator + endFormatted
	if climatologyFrequencies[dsFrequency] {
		res += "-clim"
	}
	return res, nil
}

// InferTimeStartEnd derives the start and end time of a dataset for use
// in filenames. Fixed fields have no time axis, hence nil endpoints.
// For climatologies the endpoints come from the climatology bounds; an
// upper bound falling on day 1 of a month is exclusive, so it is rolled
// back one day.
func InferTimeStartEnd(
	ds *dataset.Dataset,
	frequencyMetadataKey, noTimeAxisFrequency, timeDimension string,
) (*time.Time, *time.Time, error) {
	frequency := ds.Attrs[frequencyMetadataKey]

	if frequency == noTimeAxisFrequency {
		return nil, nil, nil
	}

	if climatologyFrequencies[frequency] {
		tv, err := ds.Var(timeDimension)
		if err != nil {
			return nil, nil, err
		}
		climBoundsVar, ok := tv.Attrs["climatology"]
		if !ok {
			return nil, nil, dataset.ErrNoSuchVariable.Msg(
				"time coordinate has no climatology attribute despite climatology frequency")
		}
		start, end, err := ds.TimeMinMax(climBoundsVar)
		if err != nil {
			return nil, nil, err
		}
		if end.Day() == 1 {
			end = end.AddDate(0, 0, -1)
		}
		return &start, &end, nil
	}

	start, end, err := ds.TimeMinMax(timeDimension)
	if err != nil {
		return nil, nil, err
	}
	return &start, &end, nil
}
