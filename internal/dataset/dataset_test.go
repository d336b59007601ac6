package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVariableSet() *Dataset {
	times := []time.Time{
		time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	bounds := [][]time.Time{
		{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	return &Dataset{
		Attrs: map[string]string{"frequency": "mon"},
		Variables: map[string]*Variable{
			"time": {
				Dims:  []string{"time"},
				Attrs: map[string]string{"bounds": "time_bnds"},
				Times: times,
			},
			"time_bnds": {Dims: []string{"time", "bnds"}, Bounds: bounds},
			"lat":       {Dims: []string{"lat"}},
			"lat_bnds":  {Dims: []string{"lat", "bnds"}},
			"co2":       {Dims: []string{"time", "lat", "lon"}},
		},
		Dims: map[string]int{"time": 2, "bnds": 2, "lat": 3, "lon": 4},
	}
}

func TestDataVariables(t *testing.T) {
	ds := testVariableSet()
	assert.Equal(t, []string{"co2"}, ds.DataVariables([]string{"bnds", "bounds"}))

	t.Run("bounds attribute beats naming", func(t *testing.T) {
		// A bounds variable with an unindicative name is still excluded
		// because the time coordinate points at it.
		ds := testVariableSet()
		ds.Variables["period_edges"] = ds.Variables["time_bnds"]
		delete(ds.Variables, "time_bnds")
		ds.Variables["time"].Attrs["bounds"] = "period_edges"
		assert.Equal(t, []string{"co2"}, ds.DataVariables([]string{"bnds", "bounds"}))
	})

	t.Run("multiple data variables are all reported", func(t *testing.T) {
		ds := testVariableSet()
		ds.Variables["areacella"] = &Variable{Dims: []string{"lat", "lon"}}
		assert.Equal(t, []string{"areacella", "co2"}, ds.DataVariables([]string{"bnds", "bounds"}))
	})
}

func TestAttrAndVarAccess(t *testing.T) {
	ds := testVariableSet()

	v, ok := ds.Attr("frequency")
	assert.True(t, ok)
	assert.Equal(t, "mon", v)
	_, ok = ds.Attr("source_id")
	assert.False(t, ok)

	assert.True(t, ds.HasDim("time"))
	assert.False(t, ds.HasDim("depth"))
	assert.True(t, ds.HasVar("co2"))

	_, err := ds.Var("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSuchVariable)
}

func TestTimeMinMax(t *testing.T) {
	ds := testVariableSet()

	t.Run("from time values", func(t *testing.T) {
		minT, maxT, err := ds.TimeMinMax("time")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC), minT)
		assert.Equal(t, time.Date(2000, 2, 15, 0, 0, 0, 0, time.UTC), maxT)
	})

	t.Run("from bounds values", func(t *testing.T) {
		minT, maxT, err := ds.TimeMinMax("time_bnds")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), minT)
		assert.Equal(t, time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC), maxT)
	})

	t.Run("no time values", func(t *testing.T) {
		_, _, err := ds.TimeMinMax("lat")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoTimeValues)
	})
}

func TestSelectBounds(t *testing.T) {
	ds := testVariableSet()

	t.Run("positional selection without a coordinate", func(t *testing.T) {
		lower, err := ds.SelectBounds("time_bnds", "bnds", 0)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC),
		}, lower)
	})

	t.Run("label selection with a reversed coordinate", func(t *testing.T) {
		// The bounds come upper-first; the coordinate says so.
		ds := testVariableSet()
		ds.Variables["bnds"] = &Variable{Dims: []string{"bnds"}, IndexValues: []int{1, 0}}
		for _, step := range ds.Variables["time_bnds"].Bounds {
			step[0], step[1] = step[1], step[0]
		}

		lower, err := ds.SelectBounds("time_bnds", "bnds", 0)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC),
		}, lower)
	})

	t.Run("unknown label", func(t *testing.T) {
		ds := testVariableSet()
		ds.Variables["bnds"] = &Variable{Dims: []string{"bnds"}, IndexValues: []int{0, 1}}
		_, err := ds.SelectBounds("time_bnds", "bnds", 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoSuchDimension)
	})
}

func TestVariableNames(t *testing.T) {
	ds := testVariableSet()
	assert.Equal(t, []string{"co2", "lat", "lat_bnds", "time", "time_bnds"}, ds.VariableNames())
}
