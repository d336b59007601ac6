package dataset

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/climforge/forcingval/internal/common/apperrors"
)

var ErrLoad apperrors.Error = apperrors.New("could not load dataset")

// jsonVariable is the on-disk form of one variable in a dataset
// document.
type jsonVariable struct {
	Dims        []string          `json:"dims"`
	Attrs       map[string]string `json:"attrs"`
	Times       []string          `json:"times"`
	Bounds      [][]string        `json:"bounds"`
	IndexValues []int             `json:"index_values"`
}

type jsonDataset struct {
	Attrs     map[string]string       `json:"attrs"`
	Variables map[string]jsonVariable `json:"variables"`
	Dims      map[string]int          `json:"dims"`
}

// timeLayout is how dataset documents spell time values.
const timeLayout = "2006-01-02T15:04:05Z"

// JSONLoader reads datasets from JSON documents holding the same
// shape as Dataset, with times as "YYYY-MM-DDThh:mm:ssZ" strings. The
// document sits next to the data file it describes: for a file x.nc
// the loader reads x.nc.json. Raw-format readers (netCDF) plug in as
// their own Loader implementations.
type JSONLoader struct{}

func (JSONLoader) LoadDataset(ctx context.Context, path string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrLoad.Err(err)
	}

	docPath := path
	if _, err := os.Stat(docPath + ".json"); err == nil {
		docPath = path + ".json"
	}
	content, err := os.ReadFile(docPath)
	if err != nil {
		return nil, ErrLoad.MsgErr("could not read "+docPath, err)
	}

	var doc jsonDataset
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, ErrLoad.MsgErr("could not parse "+docPath, err)
	}

	ds := &Dataset{
		Attrs:     doc.Attrs,
		Variables: make(map[string]*Variable, len(doc.Variables)),
		Dims:      doc.Dims,
	}
	if ds.Attrs == nil {
		ds.Attrs = map[string]string{}
	}
	for name, jv := range doc.Variables {
		v := &Variable{Dims: jv.Dims, Attrs: jv.Attrs, IndexValues: jv.IndexValues}
		for _, s := range jv.Times {
			parsed, err := time.Parse(timeLayout, s)
			if err != nil {
				return nil, ErrLoad.MsgErr("bad time value in "+name, err)
			}
			v.Times = append(v.Times, parsed)
		}
		for _, step := range jv.Bounds {
			var row []time.Time
			for _, s := range step {
				parsed, err := time.Parse(timeLayout, s)
				if err != nil {
					return nil, ErrLoad.MsgErr("bad bounds value in "+name, err)
				}
				row = append(row, parsed)
			}
			v.Bounds = append(v.Bounds, row)
		}
		ds.Variables[name] = v
	}
	return ds, nil
}
