package dataset

import (
	"sort"
	"time"

	"github.com/climforge/forcingval/internal/common/apperrors"
)

var (
	ErrNoSuchVariable  apperrors.Error = apperrors.New("variable not in dataset")
	ErrNoSuchDimension apperrors.Error = apperrors.New("dimension not in dataset")
	ErrNoTimeValues    apperrors.Error = apperrors.New("variable carries no time values")
)

// Dataset is the in-memory labelled-array abstraction handed to the
// inference and validation components. It carries the already-loaded
// content of one file; reading and writing raw bytes happens elsewhere.
type Dataset struct {
	// Attrs holds the file's global attributes.
	Attrs map[string]string

	// Variables holds coordinate and data variables by name.
	Variables map[string]*Variable

	// Dims holds dimension sizes by name.
	Dims map[string]int
}

// Variable is one named variable. Time-valued variables (the time
// coordinate, time bounds, climatology bounds) populate Times or Bounds;
// other variables only matter to the core by name and dimensions.
type Variable struct {
	Dims  []string
	Attrs map[string]string

	// Times holds values of a 1-D time-valued variable.
	Times []time.Time

	// Bounds holds values of a 2-D time-valued variable,
	// indexed [step][position along the bounds dimension].
	Bounds [][]time.Time

	// IndexValues holds the coordinate values of a 1-D integer
	// coordinate (used for the bounds dimension, whose coordinate
	// values decide which position is the lower and which the upper
	// bound).
	IndexValues []int
}

func (ds *Dataset) HasDim(name string) bool {
	_, ok := ds.Dims[name]
	return ok
}

func (ds *Dataset) Var(name string) (*Variable, error) {
	v, ok := ds.Variables[name]
	if !ok {
		return nil, ErrNoSuchVariable.Msg("variable not in dataset: " + name)
	}
	return v, nil
}

// HasVar reports whether the dataset has a variable or coordinate with
// the given name.
func (ds *Dataset) HasVar(name string) bool {
	_, ok := ds.Variables[name]
	return ok
}

// Attr returns the value of a global attribute and whether it is set.
func (ds *Dataset) Attr(name string) (string, bool) {
	v, ok := ds.Attrs[name]
	return v, ok
}

// TimeMinMax returns the earliest and latest time value of a
// time-valued variable, looking at Times or Bounds as populated.
func (ds *Dataset) TimeMinMax(name string) (time.Time, time.Time, error) {
	v, err := ds.Var(name)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var all []time.Time
	all = append(all, v.Times...)
	for _, step := range v.Bounds {
		all = append(all, step...)
	}
	if len(all) == 0 {
		return time.Time{}, time.Time{}, ErrNoTimeValues.Msg("variable carries no time values: " + name)
	}

	minT, maxT := all[0], all[0]
	for _, t := range all[1:] {
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}
	return minT, maxT, nil
}

// SelectBounds returns the column of a 2-D bounds variable selected by
// the value of the bounds-dimension coordinate. If the bounds dimension
// has no coordinate variable, the value is used as a plain index. This
// mirrors selection by label rather than position: sources are free to
// order their bounds either way round.
func (ds *Dataset) SelectBounds(name, boundsDim string, val int) ([]time.Time, error) {
	v, err := ds.Var(name)
	if err != nil {
		return nil, err
	}

	idx := val
	if coord, ok := ds.Variables[boundsDim]; ok && len(coord.IndexValues) > 0 {
		idx = -1
		for i, cv := range coord.IndexValues {
			if cv == val {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNoSuchDimension.Msg("no bounds coordinate value matches requested label")
		}
	}

	out := make([]time.Time, 0, len(v.Bounds))
	for _, step := range v.Bounds {
		if idx >= len(step) {
			return nil, ErrNoSuchDimension.Msg("bounds index out of range for " + name)
		}
		out = append(out, step[idx])
	}
	return out, nil
}

// VariableNames returns all variable names in sorted order.
func (ds *Dataset) VariableNames() []string {
	names := make([]string, 0, len(ds.Variables))
	for name := range ds.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
