package cvs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/climforge/forcingval/internal/common/apperrors"
)

var (
	// ErrNonUnique is returned when values that must be unique are
	// not. Raised at construction time; a CV with duplicate keys is
	// broken at source.
	ErrNonUnique apperrors.Error = apperrors.New("values are not unique")

	ErrCVLoad   apperrors.Error = apperrors.New("error loading CVs")
	ErrCVSchema apperrors.Error = apperrors.New("raw CV document does not match its schema")
	ErrNoEntry  apperrors.Error = apperrors.New("no entry with the requested ID")
)

// NonUniqueError builds an ErrNonUnique whose message carries the
// occurrence count of every offending value.
func NonUniqueError(description string, values []string) apperrors.Error {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	var dups []string
	for v, n := range counts {
		if n > 1 {
			dups = append(dups, fmt.Sprintf("%q x%d", v, n))
		}
	}
	sort.Strings(dups)
	return ErrNonUnique.Msg(fmt.Sprintf("%s. Occurrence counts: %s", description, strings.Join(dups, ", ")))
}
