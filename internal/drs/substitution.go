package drs

import (
	"fmt"
	"sort"
	"strings"
)

// Substitution is one parsed piece of a DRS template.
type Substitution struct {
	// StringToReplace is the literal substring of the template that
	// this substitution replaces. For optional substitutions this is
	// the whole bracketed section, brackets included.
	StringToReplace string

	// RequiredMetadata lists the metadata keys needed to apply the
	// substitution.
	RequiredMetadata []string

	// ReplacementString is the replacement pattern, with "{key}" slots
	// for metadata values.
	ReplacementString string

	// Optional substitutions are deleted from the output when their
	// metadata is absent instead of failing.
	Optional bool
}

// Apply applies the substitution to start. When validate is true, the
// substituted values are checked against the DRS character rules first.
func (s Substitution) Apply(start string, metadata map[string]string, validate bool) (string, error) {
	var missing []string
	for _, k := range s.RequiredMetadata {
		if _, ok := metadata[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		if !s.Optional {
			return "", ErrMissingMetadata.Msg(fmt.Sprintf(
				"missing metadata %v for substitution %q", missing, s.StringToReplace))
		}
		return strings.Replace(start, s.StringToReplace, "", 1), nil
	}

	replacement := s.ReplacementString
	for _, k := range s.RequiredMetadata {
		v := metadata[k]
		if validate {
			if err := validateSubstitutedValue(k, v); err != nil {
				return "", err
			}
		}
		replacement = strings.ReplaceAll(replacement, "{"+k+"}", v)
	}
	return strings.Replace(start, s.StringToReplace, replacement, 1), nil
}

// ApplySubstitutions applies a parsed substitution list to its template
// in order.
func ApplySubstitutions(template string, subs []Substitution, metadata map[string]string, validate bool) (string, error) {
	res := template
	for _, s := range subs {
		var err error
		res, err = s.Apply(res, metadata, validate)
		if err != nil {
			return "", err
		}
	}
	return res, nil
}

// defaultKnownReplacements maps characters that commonly appear in
// metadata values (version strings, institution IDs) onto their
// DRS-legal equivalents. Ordered so the output is deterministic.
var defaultKnownReplacements = []struct{ old, new string }{
	{"_", "-"},
	{".", "-"},
}

// ApplyKnownReplacements normalises a metadata value before it is
// substituted into a template.
func ApplyKnownReplacements(inp string) string {
	res := inp
	for _, r := range defaultKnownReplacements {
		res = strings.ReplaceAll(res, r.old, r.new)
	}
	return res
}

// Underscore is the documented field separator in final filenames and
// directories, so it is allowed in assembled path components but not in
// individual substituted values.
const (
	validSubstitutionChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-"
	validPathChars         = validSubstitutionChars + "_"
)

func invalidChars(inp, valid string) []string {
	seen := make(map[rune]bool)
	var bad []string
	for _, c := range inp {
		if !strings.ContainsRune(valid, c) && !seen[c] {
			seen[c] = true
			bad = append(bad, string(c))
		}
	}
	sort.Strings(bad)
	return bad
}

func validateSubstitutedValue(key, value string) error {
	if bad := invalidChars(value, validSubstitutionChars); len(bad) > 0 {
		return ErrInvalidCharacters.Msg(fmt.Sprintf(
			"metadata for %s, %q, contains invalid characters %v (allowed: [A-Za-z0-9-])",
			key, value, bad))
	}
	return nil
}

func validatePathComponent(component string) error {
	if bad := invalidChars(component, validPathChars); len(bad) > 0 {
		return ErrInvalidCharacters.Msg(fmt.Sprintf(
			"path component %q contains invalid characters %v (allowed: [A-Za-z0-9_-])",
			component, bad))
	}
	return nil
}
