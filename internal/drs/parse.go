package drs

import (
	"fmt"
	"strings"
	"sync"
)

const (
	startPlaceholder = '<'
	endPlaceholder   = '>'
	startOptional    = '['
	endOptional      = ']'
)

// parserState is the tagged state of the template parser. Keeping the
// states explicit makes illegal transitions exhaustive instead of
// depending on combinations of boolean flags.
type parserState int

const (
	// stateLiteral: outside any section.
	stateLiteral parserState = iota
	// stateRequiredPlaceholder: inside <...> outside any optional section.
	stateRequiredPlaceholder
	// stateOptionalLiteral: inside [...] before its placeholder.
	stateOptionalLiteral
	// stateOptionalPlaceholder: inside <...> inside [...].
	stateOptionalPlaceholder
	// stateOptionalClosed: inside [...] after its placeholder closed.
	stateOptionalClosed
)

var parseCache sync.Map // template string -> []Substitution

// ParseTemplate parses a DRS template into its ordered substitutions.
// Results are cached per template string; a substitution list is a pure
// function of the template.
func ParseTemplate(template string) ([]Substitution, error) {
	if cached, ok := parseCache.Load(template); ok {
		return cached.([]Substitution), nil
	}

	subs, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}
	parseCache.Store(template, subs)
	return subs, nil
}

func parseTemplate(template string) ([]Substitution, error) {
	var subs []Substitution
	state := stateLiteral
	var placeholder strings.Builder
	var optional strings.Builder

	fail := func(pos int, msg string) error {
		return ErrTemplateParse.Msg(fmt.Sprintf("%s at position %d in template %q", msg, pos, template))
	}

	for i, c := range template {
		switch c {
		case startOptional:
			if state != stateLiteral {
				return nil, fail(i, "optional section opened inside another section")
			}
			state = stateOptionalLiteral

		case startPlaceholder:
			switch state {
			case stateLiteral:
				state = stateRequiredPlaceholder
			case stateOptionalLiteral:
				optional.WriteRune(c)
				state = stateOptionalPlaceholder
			case stateOptionalClosed:
				return nil, fail(i, "optional section contains more than one placeholder")
			default:
				return nil, fail(i, "placeholder opened inside another placeholder")
			}

		case endPlaceholder:
			switch state {
			case stateRequiredPlaceholder:
				key := placeholder.String()
				subs = append(subs, Substitution{
					StringToReplace:   string(startPlaceholder) + key + string(endPlaceholder),
					RequiredMetadata:  []string{key},
					ReplacementString: "{" + key + "}",
					Optional:          false,
				})
				placeholder.Reset()
				state = stateLiteral
			case stateOptionalPlaceholder:
				optional.WriteRune(c)
				state = stateOptionalClosed
			default:
				return nil, fail(i, "placeholder closed without an open placeholder")
			}

		case endOptional:
			switch state {
			case stateOptionalClosed:
				key := placeholder.String()
				section := optional.String()
				subs = append(subs, Substitution{
					StringToReplace:  string(startOptional) + section + string(endOptional),
					RequiredMetadata: []string{key},
					ReplacementString: strings.Replace(section,
						string(startPlaceholder)+key+string(endPlaceholder), "{"+key+"}", 1),
					Optional: true,
				})
				placeholder.Reset()
				optional.Reset()
				state = stateLiteral
			case stateOptionalLiteral:
				return nil, fail(i, "optional section closed without a placeholder")
			case stateOptionalPlaceholder:
				return nil, fail(i, "optional section closed inside a placeholder")
			default:
				return nil, fail(i, "optional section closed without an open optional section")
			}

		default:
			switch state {
			case stateRequiredPlaceholder, stateOptionalPlaceholder:
				placeholder.WriteRune(c)
			}
			switch state {
			case stateOptionalLiteral, stateOptionalPlaceholder, stateOptionalClosed:
				optional.WriteRune(c)
			}
		}
	}

	if state != stateLiteral {
		return nil, fail(len(template), "template ends inside an unterminated section")
	}
	return subs, nil
}

// KeyRequiredForSubstitutions reports whether key is required metadata,
// i.e. appears in a non-optional substitution.
func KeyRequiredForSubstitutions(key string, subs []Substitution) bool {
	for _, s := range subs {
		if s.Optional {
			continue
		}
		for _, k := range s.RequiredMetadata {
			if k == key {
				return true
			}
		}
	}
	return false
}

// KeyInSubstitutions reports whether key appears in any substitution,
// optional or not.
func KeyInSubstitutions(key string, subs []Substitution) bool {
	for _, s := range subs {
		for _, k := range s.RequiredMetadata {
			if k == key {
				return true
			}
		}
	}
	return false
}
