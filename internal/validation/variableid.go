package validation

import (
	"errors"
	"fmt"
	"sort"
)

func variableIDCharAllowed(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	}
	return false
}

// ValidateVariableID checks the variable_id attribute. It must contain
// only ASCII letters, digits and underscores (stricter than general CF
// naming, no hyphens or spaces), and it must exactly equal the name of
// the dataset's one data variable. Both conditions are checked every
// time so a caller sees both violations when both occur.
func ValidateVariableID(variableID string, dsVariable string) error {
	var errs []error

	invalid := make(map[rune]struct{})
	for _, c := range variableID {
		if !variableIDCharAllowed(c) {
			invalid[c] = struct{}{}
		}
	}
	if len(invalid) > 0 {
		chars := make([]string, 0, len(invalid))
		for c := range invalid {
			chars = append(chars, fmt.Sprintf("%q", c))
		}
		sort.Strings(chars)
		errs = append(errs, ErrInvalidValue.Msg(fmt.Sprintf(
			"the variable_id attribute must only contain alphanumeric characters "+
				"and underscores, received %q which contains the invalid characters %v",
			variableID, chars)))
	}

	if variableID != dsVariable {
		errs = append(errs, ErrInvalidValue.Msg(fmt.Sprintf(
			"the variable_id attribute must match the variable name %q exactly, received %q",
			dsVariable, variableID)))
	}

	return errors.Join(errs...)
}
