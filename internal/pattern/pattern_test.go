package pattern_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/temirov/fpr/internal/pattern"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{
			name:     "plain_text_passes_through",
			pattern:  "src/main.go",
			expected: []string{"src/main.go"},
		},
		{
			name:     "empty_input",
			pattern:  "",
			expected: []string{""},
		},
		{
			name:     "group_with_prefix_and_suffix",
			pattern:  "a(b,c)d",
			expected: []string{"abd", "acd"},
		},
		{
			name:     "group_of_files_under_directory",
			pattern:  "src/(foo.txt, bar.txt)",
			expected: []string{"src/foo.txt", "src/bar.txt"},
		},
		{
			name:     "exclusion_removes_alternative",
			pattern:  "src/(keep.txt, -drop.txt)",
			expected: []string{"src/keep.txt"},
		},
		{
			name:     "caret_marks_exclusion",
			pattern:  "src/(keep.txt, ^drop.txt)",
			expected: []string{"src/keep.txt"},
		},
		{
			name:     "nested_group",
			pattern:  "util/(fs, time)",
			expected: []string{"util/fs", "util/time"},
		},
		{
			name:     "nested_group_alternatives_flatten",
			pattern:  "a(b,(c,d))",
			expected: []string{"ab", "ac", "ad"},
		},
		{
			name:     "exclusion_propagates_through_nested_group",
			pattern:  "a(-(x,y), b, x)",
			expected: []string{"ab"},
		},
		{
			name:     "whitespace_around_segments_is_trimmed",
			pattern:  "(a, b)",
			expected: []string{"a", "b"},
		},
		{
			name:     "whitespace_insensitivity_matches_compact_form",
			pattern:  "(a,b)",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty_segments_are_dropped",
			pattern:  "a(,b,,c,)",
			expected: []string{"ab", "ac"},
		},
		{
			name:     "empty_group_yields_nothing",
			pattern:  "a()b",
			expected: []string{},
		},
		{
			name:     "lone_exclusion_marker_excludes_empty_expansion",
			pattern:  "(a, -)",
			expected: []string{"a"},
		},
		{
			name:     "stray_closing_paren_is_literal",
			pattern:  "a)b",
			expected: []string{"a)b"},
		},
		{
			name:     "duplicate_include_with_exclusion_removes_all",
			pattern:  "(a, -a, a)",
			expected: []string{},
		},
		{
			name:     "cartesian_product_of_sequential_groups",
			pattern:  "(a,b)(1,2)",
			expected: []string{"a1", "a2", "b1", "b2"},
		},
		{
			name:     "excluded_combination_is_subtracted",
			pattern:  "(a,-b)(1,2)",
			expected: []string{"a1", "a2"},
		},
		{
			name:     "deep_nesting_with_directory_layout",
			pattern:  "src/(main.rs, util/(fs, time), -tests)",
			expected: []string{"src/main.rs", "src/util/fs", "src/util/time"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			expanded, expansionError := pattern.Expand(testCase.pattern)
			if expansionError != nil {
				t.Fatalf("expand %q failed: %v", testCase.pattern, expansionError)
			}
			if len(expanded) == 0 && len(testCase.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(expanded, testCase.expected) {
				t.Fatalf("expand %q: expected %v, got %v", testCase.pattern, testCase.expected, expanded)
			}
		})
	}
}

func TestExpandUnmatchedParenthesis(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		pattern string
	}{
		{name: "simple_unclosed_group", pattern: "a(b,c"},
		{name: "nested_unclosed_group", pattern: "a(b,(c,d)"},
		{name: "trailing_open_paren", pattern: "src/("},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, expansionError := pattern.Expand(testCase.pattern)
			if expansionError == nil {
				t.Fatalf("expected error for %q", testCase.pattern)
			}
			if !errors.Is(expansionError, pattern.ErrUnmatchedParenthesis) {
				t.Fatalf("expected ErrUnmatchedParenthesis, got %v", expansionError)
			}
		})
	}
}

func TestExpandIsStableAcrossInvocations(t *testing.T) {
	t.Parallel()

	patternValue := "src/(a, b, -b, (c, -c))"
	firstResult, firstError := pattern.Expand(patternValue)
	if firstError != nil {
		t.Fatalf("first expand failed: %v", firstError)
	}
	secondResult, secondError := pattern.Expand(patternValue)
	if secondError != nil {
		t.Fatalf("second expand failed: %v", secondError)
	}
	if !reflect.DeepEqual(firstResult, secondResult) {
		t.Fatalf("expansion is not stable: %v vs %v", firstResult, secondResult)
	}
}

func TestExpandNeverReturnsExcludedStrings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		pattern   string
		forbidden []string
	}{
		{name: "direct_exclusion", pattern: "(a, -a)", forbidden: []string{"a"}},
		{name: "exclusion_composed_with_suffix_group", pattern: "x/(keep, -drop)(1, 2)", forbidden: []string{"x/drop1", "x/drop2"}},
		{name: "excluded_nested_group", pattern: "a(-(b,c), b, c, d)", forbidden: []string{"ab", "ac"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			expanded, expansionError := pattern.Expand(testCase.pattern)
			if expansionError != nil {
				t.Fatalf("expand %q failed: %v", testCase.pattern, expansionError)
			}
			for _, forbiddenValue := range testCase.forbidden {
				for _, expandedValue := range expanded {
					if expandedValue == forbiddenValue {
						t.Fatalf("excluded string %q leaked from %q: %v", forbiddenValue, testCase.pattern, expanded)
					}
				}
			}
		})
	}
}

func TestHasGroup(t *testing.T) {
	t.Parallel()

	if !pattern.HasGroup("src/(a,b)") {
		t.Fatal("expected grouping to be detected")
	}
	if pattern.HasGroup("src/main.go") {
		t.Fatal("expected no grouping for plain path")
	}
}

func TestIsGlob(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "star", input: "*.go", expected: true},
		{name: "double_star", input: "**/*.txt", expected: true},
		{name: "question_mark", input: "file?.txt", expected: true},
		{name: "character_class", input: "file[0-9].txt", expected: true},
		{name: "plain_path", input: "src/main.go", expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if actual := pattern.IsGlob(testCase.input); actual != testCase.expected {
				t.Fatalf("IsGlob(%q): expected %v, got %v", testCase.input, testCase.expected, actual)
			}
		})
	}
}
