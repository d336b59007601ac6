package dataset

import (
	"sort"
	"strings"
)

// DataVariables returns the names of the dataset's data variables,
// excluding bounds variables and coordinate variables. A variable is
// treated as a bounds variable if another variable names it in a
// "bounds" or "climatology" attribute, or if its name contains one of
// the given indicators. There is no agreed convention for marking
// bounds variables, hence the indicator fallback.
func (ds *Dataset) DataVariables(bndsIndicators []string) []string {
	isBounds := make(map[string]bool)
	for _, v := range ds.Variables {
		if b, ok := v.Attrs["bounds"]; ok {
			isBounds[b] = true
		}
		if b, ok := v.Attrs["climatology"]; ok {
			isBounds[b] = true
		}
	}

	var out []string
	for name, v := range ds.Variables {
		if isBounds[name] {
			continue
		}
		if indicated(name, bndsIndicators) {
			continue
		}
		// Coordinate variables are named after a dimension.
		if ds.HasDim(name) {
			continue
		}
		// Anything carrying only time values is an axis helper,
		// not data.
		if len(v.Times) > 0 || len(v.Bounds) > 0 {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func indicated(name string, indicators []string) bool {
	for _, ind := range indicators {
		if ind != "" && strings.Contains(name, ind) {
			return true
		}
	}
	return false
}
