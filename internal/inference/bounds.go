package inference

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/climforge/forcingval/internal/common/apperrors"
	"github.com/climforge/forcingval/internal/dataset"
)

var ErrBoundsInfo apperrors.Error = apperrors.New("could not derive bounds information")

// BoundsInfo describes how time bounds are stored in a dataset.
type BoundsInfo struct {
	// TimeBounds is the name of the variable holding the time bounds.
	TimeBounds string

	// BoundsDim is the name of the bounds dimension.
	BoundsDim string

	// BoundsDimLowerVal selects the lower bound along the bounds
	// dimension.
	BoundsDimLowerVal int

	// BoundsDimUpperVal selects the upper bound along the bounds
	// dimension.
	BoundsDimUpperVal int
}

func DefaultBoundsInfo() BoundsInfo {
	return BoundsInfo{
		TimeBounds:        "time_bounds",
		BoundsDim:         "bounds",
		BoundsDimLowerVal: 0,
		BoundsDimUpperVal: 1,
	}
}

// BoundsInfoFromDataset derives BoundsInfo from a dataset's CF-style
// "bounds" attribute. Climatologies and fixed fields carry no
// conventional time bounds, so for those the bounds dimension is
// guessed from common names.
func BoundsInfoFromDataset(ds *dataset.Dataset, timeDimension string) (BoundsInfo, error) {
	climatology := false
	if tv, ok := ds.Variables[timeDimension]; ok {
		_, climatology = tv.Attrs["climatology"]
	}

	var timeBounds, boundsDim string
	if ds.HasVar(timeDimension) && !climatology {
		tv := ds.Variables[timeDimension]
		// The attribute name is fixed by the CF convention.
		b, ok := tv.Attrs["bounds"]
		if !ok {
			return BoundsInfo{}, ErrBoundsInfo.Msg(
				fmt.Sprintf("%q has no bounds attribute", timeDimension))
		}
		bv, err := ds.Var(b)
		if err != nil {
			return BoundsInfo{}, ErrBoundsInfo.Err(err)
		}
		var nonTime []string
		for _, d := range bv.Dims {
			if d != timeDimension {
				nonTime = append(nonTime, d)
			}
		}
		if len(nonTime) != 1 {
			return BoundsInfo{}, ErrBoundsInfo.Msg(fmt.Sprintf(
				"expected one non-time dimension for %q, derived %v from %v",
				b, nonTime, bv.Dims))
		}
		timeBounds = b
		boundsDim = nonTime[0]
	} else {
		if climatology {
			log.Debug().Msg("climatology, guessing bounds info")
		} else {
			log.Debug().Str("time_dimension", timeDimension).Msg("time dimension not in dataset, guessing bounds info")
		}
		guesses := []string{"bounds", "bnds"}
		for _, guess := range guesses {
			if ds.HasDim(guess) {
				boundsDim = guess
				timeBounds = "not_used"
				break
			}
		}
		if boundsDim == "" {
			return BoundsInfo{}, ErrBoundsInfo.Msg(fmt.Sprintf(
				"could not guess the bounds dimension, tried %v", guesses))
		}
	}

	if size := ds.Dims[boundsDim]; size != 2 {
		return BoundsInfo{}, ErrBoundsInfo.Msg(fmt.Sprintf(
			"bounds dimension %q has size %d, expected 2", boundsDim, size))
	}

	lower, upper := 0, 1
	if coord, ok := ds.Variables[boundsDim]; ok && len(coord.IndexValues) == 2 {
		lower, upper = coord.IndexValues[0], coord.IndexValues[1]
		if lower > upper {
			lower, upper = upper, lower
		}
	}

	return BoundsInfo{
		TimeBounds:        timeBounds,
		BoundsDim:         boundsDim,
		BoundsDimLowerVal: lower,
		BoundsDimUpperVal: upper,
	}, nil
}
