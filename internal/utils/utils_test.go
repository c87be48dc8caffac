package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/fpr/internal/utils"
)

func TestDeduplicateStrings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		values   []string
		expected []string
	}{
		{
			name:     "keeps_first_occurrence",
			values:   []string{"a", "b", "a", "c", "b"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "no_duplicates",
			values:   []string{"x", "y"},
			expected: []string{"x", "y"},
		},
		{
			name:     "empty_slice",
			values:   nil,
			expected: []string{},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actual := utils.DeduplicateStrings(testCase.values)
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

func TestRelativePathOrSelf(t *testing.T) {
	t.Parallel()

	rootDirectory, rootError := filepath.Abs("root")
	if rootError != nil {
		t.Fatalf("abs failed: %v", rootError)
	}

	testCases := []struct {
		name     string
		fullPath string
		root     string
		expected string
	}{
		{
			name:     "nested_path_relativizes",
			fullPath: filepath.Join(rootDirectory, "sub", "file.txt"),
			root:     rootDirectory,
			expected: "sub/file.txt",
		},
		{
			name:     "root_itself_is_dot",
			fullPath: rootDirectory,
			root:     rootDirectory,
			expected: ".",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
			if actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty", data: nil, expected: false},
		{name: "plain_text", data: []byte("hello world\n"), expected: false},
		{name: "null_byte", data: []byte{'a', 0x00, 'b'}, expected: true},
		{name: "invalid_utf8", data: []byte{0xff, 0xfe}, expected: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if actual := utils.IsBinary(testCase.data); actual != testCase.expected {
				t.Fatalf("IsBinary(%v): expected %v, got %v", testCase.data, testCase.expected, actual)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "kilobytes", bytes: 2048, expected: "2kb"},
		{name: "fraction_below_ten", bytes: 1536, expected: "1.5kb"},
		{name: "megabytes", bytes: 20 * 1024 * 1024, expected: "20mb"},
		{name: "negative", bytes: -1, expected: "0b"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if actual := utils.FormatFileSize(testCase.bytes); actual != testCase.expected {
				t.Fatalf("FormatFileSize(%d): expected %q, got %q", testCase.bytes, testCase.expected, actual)
			}
		})
	}
}
