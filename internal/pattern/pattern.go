// Package pattern expands grouped path patterns into concrete path or glob
// strings. A pattern may contain parenthesized groups of comma-separated
// alternatives, nested arbitrarily, with a leading '-' or '^' on an
// alternative excluding everything it expands to:
//
//	src/(main.go, util/(fs, time), -testdata)
//
// expands to src/main.go, src/util/fs and src/util/time, with src/testdata
// removed from the result. The characters '(', ')' and ',' are assumed never
// to occur in actual filenames.
package pattern

import (
	"errors"
	"strings"
)

// ErrUnmatchedParenthesis reports a '(' that is never closed before the end
// of the pattern.
var ErrUnmatchedParenthesis = errors.New("unmatched '(' in pattern")

// exclusionMarkers are the characters that mark a group segment as excluded
// when they appear first in the trimmed segment.
const exclusionMarkers = "-^"

// expansionPair is one fully expanded alternative together with its
// accumulated exclusion flag. The flag is monotonic: once an enclosing
// segment is exclusion-marked, every string produced inside it stays excluded.
type expansionPair struct {
	text     string
	excluded bool
}

// Expand resolves a grouped pattern into the ordered list of included strings
// with every excluded string subtracted out. Inputs without grouping syntax
// come back as a single-element list. The only failure mode is an unmatched
// opening parenthesis.
func Expand(patternValue string) ([]string, error) {
	expandedPairs, expansionError := expandSpan([]rune(patternValue))
	if expansionError != nil {
		return nil, expansionError
	}

	includedStrings := make([]string, 0, len(expandedPairs))
	excludedStrings := make(map[string]struct{})
	for _, pair := range expandedPairs {
		if pair.excluded {
			excludedStrings[pair.text] = struct{}{}
		} else {
			includedStrings = append(includedStrings, pair.text)
		}
	}

	filteredStrings := includedStrings[:0]
	for _, includedString := range includedStrings {
		if _, isExcluded := excludedStrings[includedString]; !isExcluded {
			filteredStrings = append(filteredStrings, includedString)
		}
	}
	return filteredStrings, nil
}

// expandSpan scans a span of characters left to right, growing every
// accumulated alternative in lockstep. A '(' hands control to parseGroup and
// combines the group's alternatives with the accumulator cartesian-style,
// OR-ing exclusion flags across the concatenation.
func expandSpan(characters []rune) ([]expansionPair, error) {
	accumulator := []expansionPair{{}}
	characterIndex := 0
	for characterIndex < len(characters) {
		if characters[characterIndex] != '(' {
			for pairIndex := range accumulator {
				accumulator[pairIndex].text += string(characters[characterIndex])
			}
			characterIndex++
			continue
		}

		groupAlternatives, resumeIndex, groupParseError := parseGroup(characters, characterIndex+1)
		if groupParseError != nil {
			return nil, groupParseError
		}
		combined := make([]expansionPair, 0, len(accumulator)*len(groupAlternatives))
		for _, prefixPair := range accumulator {
			for _, suffixPair := range groupAlternatives {
				combined = append(combined, expansionPair{
					text:     prefixPair.text + suffixPair.text,
					excluded: prefixPair.excluded || suffixPair.excluded,
				})
			}
		}
		accumulator = combined
		characterIndex = resumeIndex
	}
	return accumulator, nil
}

// parseGroup parses the comma-separated segment list that starts just inside
// a '('. Commas and the terminating ')' only count at the current nesting
// depth; nested groups pass through untouched and are expanded recursively
// per segment. It returns the group's alternatives and the index just past
// the matching ')'.
func parseGroup(characters []rune, startIndex int) ([]expansionPair, int, error) {
	var segments []string
	nestingDepth := 0
	segmentStart := startIndex
	characterIndex := startIndex
	groupClosed := false

	for characterIndex < len(characters) && !groupClosed {
		switch characters[characterIndex] {
		case '(':
			nestingDepth++
			characterIndex++
		case ')':
			if nestingDepth == 0 {
				segments = append(segments, string(characters[segmentStart:characterIndex]))
				characterIndex++
				groupClosed = true
				break
			}
			nestingDepth--
			characterIndex++
		case ',':
			if nestingDepth == 0 {
				segments = append(segments, string(characters[segmentStart:characterIndex]))
				characterIndex++
				segmentStart = characterIndex
				break
			}
			characterIndex++
		default:
			characterIndex++
		}
	}

	if !groupClosed {
		return nil, 0, ErrUnmatchedParenthesis
	}

	var groupAlternatives []expansionPair
	for _, segment := range segments {
		trimmedSegment := strings.TrimSpace(segment)
		if trimmedSegment == "" {
			continue
		}
		segmentExcluded := false
		if strings.ContainsRune(exclusionMarkers, rune(trimmedSegment[0])) {
			segmentExcluded = true
			trimmedSegment = trimmedSegment[1:]
		}
		segmentPairs, segmentExpansionError := expandSpan([]rune(trimmedSegment))
		if segmentExpansionError != nil {
			return nil, 0, segmentExpansionError
		}
		for _, segmentPair := range segmentPairs {
			groupAlternatives = append(groupAlternatives, expansionPair{
				text:     segmentPair.text,
				excluded: segmentExcluded || segmentPair.excluded,
			})
		}
	}
	return groupAlternatives, characterIndex, nil
}

// HasGroup reports whether the input uses grouping syntax at all, letting
// callers skip expansion for plain paths and globs.
func HasGroup(inputValue string) bool {
	return strings.ContainsRune(inputValue, '(')
}

// IsGlob reports whether the string looks like a shell glob rather than a
// literal path.
func IsGlob(inputValue string) bool {
	return strings.ContainsAny(inputValue, "*?[")
}
