package inference

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/climforge/forcingval/internal/common/apperrors"
	"github.com/climforge/forcingval/internal/dataset"
)

// ErrUnsupportedFrequency is returned when a time axis does not match
// any supported cadence. The inference never guesses: mislabelling
// climate data is worse than failing.
var ErrUnsupportedFrequency apperrors.Error = apperrors.New("unsupported time axis cadence")

// monthDiffEndOfYear is the month delta of a December to January step.
const monthDiffEndOfYear = -11

// InferFrequency derives the frequency label from a dataset's time
// axis. A dataset without the time dimension is a fixed field and gets
// noTimeAxisFrequency. A time coordinate carrying a "climatology"
// attribute is treated as a climatology; only monthly climatologies are
// supported ("monC").
func InferFrequency(ds *dataset.Dataset, noTimeAxisFrequency, timeDimension string, bounds BoundsInfo) (string, error) {
	if !ds.HasDim(timeDimension) {
		log.Debug().Str("time_dimension", timeDimension).Msg("time dimension not in dataset, assuming fixed field")
		return noTimeAxisFrequency, nil
	}

	climatology := false
	if tv, ok := ds.Variables[timeDimension]; ok {
		_, climatology = tv.Attrs["climatology"]
	}

	stem, err := frequencyLabelStem(ds, climatology, timeDimension, bounds)
	if err != nil {
		return "", err
	}

	if climatology {
		if stem != "mon" {
			// 1hrCM exists in the wild but is not handled yet.
			return "", ErrUnsupportedFrequency.Msg(
				fmt.Sprintf("climatology with frequency stem %q", stem))
		}
		return stem + "C", nil
	}
	return stem, nil
}

func frequencyLabelStem(ds *dataset.Dataset, climatology bool, timeDimension string, bounds BoundsInfo) (string, error) {
	if climatology {
		// Climatologies have no conventional bounds, so work from
		// consecutive time-axis values instead.
		tv, err := ds.Var(timeDimension)
		if err != nil {
			return "", err
		}
		if allMonthlySteps(tv.Times[:len(tv.Times)-1], tv.Times[1:]) {
			return "mon", nil
		}
		return "", ErrUnsupportedFrequency.Msg("climatology time axis does not advance monthly")
	}

	lower, err := ds.SelectBounds(bounds.TimeBounds, bounds.BoundsDim, bounds.BoundsDimLowerVal)
	if err != nil {
		return "", err
	}
	upper, err := ds.SelectBounds(bounds.TimeBounds, bounds.BoundsDim, bounds.BoundsDimUpperVal)
	if err != nil {
		return "", err
	}
	if len(lower) == 0 || len(lower) != len(upper) {
		return "", ErrUnsupportedFrequency.Msg("time bounds are empty or ragged")
	}

	if allYearlySteps(lower, upper) {
		return "yr", nil
	}
	if allMonthlySteps(lower, upper) {
		return "mon", nil
	}
	// Counting elapsed days between bounds is only safe as a last
	// resort: calendar discontinuities (October 1582) break day counts
	// for the coarser cadences, which is why the month/year deltas
	// above come first.
	if allDailySteps(lower, upper) {
		return "day", nil
	}

	return "", ErrUnsupportedFrequency.Msg("time bounds match no supported cadence (yr, mon, day)")
}

func allYearlySteps(lower, upper []time.Time) bool {
	for i := range lower {
		monthDiff := int(upper[i].Month()) - int(lower[i].Month())
		yearDiff := upper[i].Year() - lower[i].Year()
		if !(monthDiff == 0 && yearDiff == 1) {
			return false
		}
	}
	return true
}

func allMonthlySteps(lower, upper []time.Time) bool {
	if len(lower) == 0 {
		return false
	}
	for i := range lower {
		monthDiff := int(upper[i].Month()) - int(lower[i].Month())
		yearDiff := upper[i].Year() - lower[i].Year()
		if monthDiff == 1 {
			continue
		}
		if monthDiff == monthDiffEndOfYear && yearDiff == 1 {
			continue
		}
		return false
	}
	return true
}

func allDailySteps(lower, upper []time.Time) bool {
	for i := range lower {
		if upper[i].Sub(lower[i]) != 24*time.Hour {
			return false
		}
	}
	return true
}
