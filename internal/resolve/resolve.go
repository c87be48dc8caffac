// Package resolve turns raw CLI inputs into a sorted, deduplicated list of
// concrete file paths. An input may be a literal file, a directory, a shell
// glob, or a grouped pattern that first expands into several of those.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mattn/go-zglob"

	"github.com/temirov/fpr/internal/pattern"
	"github.com/temirov/fpr/internal/utils"
)

const (
	// errorInputMissingFormat reports an input that names no existing path.
	errorInputMissingFormat = "input %q does not exist"
	// errorInvalidGlobFormat reports a glob pattern zglob rejected.
	errorInvalidGlobFormat = "invalid glob %q: %w"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for %q: %w"
	// errorWalkFormat reports a directory traversal failure.
	errorWalkFormat = "walk failed for %q: %w"
)

// Options controls how inputs are resolved to files.
type Options struct {
	// Recursive enables descending into subdirectories when an input names a
	// directory.
	Recursive bool
	// WorkingDirectory anchors relative inputs and globs. Empty means the
	// process working directory.
	WorkingDirectory string
}

// Inputs resolves every raw input to concrete file paths, expanding grouped
// patterns first, and returns the union sorted and deduplicated. An input
// that names no existing path is a hard error for the whole invocation.
func Inputs(rawInputs []string, options Options) ([]string, error) {
	var collectedPaths []string
	for _, rawInput := range rawInputs {
		expandedInputs := []string{rawInput}
		if pattern.HasGroup(rawInput) {
			groupExpandedInputs, expansionError := pattern.Expand(rawInput)
			if expansionError != nil {
				return nil, expansionError
			}
			expandedInputs = groupExpandedInputs
		}

		for _, expandedInput := range expandedInputs {
			resolvedPaths, resolutionError := resolveOne(expandedInput, options)
			if resolutionError != nil {
				return nil, resolutionError
			}
			collectedPaths = append(collectedPaths, resolvedPaths...)
		}
	}

	sort.Strings(collectedPaths)
	return utils.DeduplicateStrings(collectedPaths), nil
}

// resolveOne handles a single concrete input string: glob, directory, or file.
func resolveOne(inputValue string, options Options) ([]string, error) {
	anchoredInput := anchorPath(inputValue, options.WorkingDirectory)

	if pattern.IsGlob(inputValue) {
		return resolveGlob(anchoredInput)
	}

	pathInformation, statError := os.Stat(anchoredInput)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, fmt.Errorf(errorInputMissingFormat, inputValue)
		}
		return nil, fmt.Errorf(errorStatFormat, inputValue, statError)
	}
	if pathInformation.IsDir() {
		return resolveDirectory(anchoredInput, options.Recursive)
	}
	return []string{anchoredInput}, nil
}

// resolveGlob matches the pattern against the file tree, keeping regular
// files only.
func resolveGlob(globValue string) ([]string, error) {
	matchedPaths, globError := zglob.Glob(globValue)
	if globError != nil {
		if os.IsNotExist(globError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorInvalidGlobFormat, globValue, globError)
	}

	var filePaths []string
	for _, matchedPath := range matchedPaths {
		matchInformation, statError := os.Stat(matchedPath)
		if statError != nil || !matchInformation.Mode().IsRegular() {
			continue
		}
		filePaths = append(filePaths, matchedPath)
	}
	return filePaths, nil
}

// resolveDirectory enumerates the files under directoryPath, descending into
// subdirectories only when recursive is set.
func resolveDirectory(directoryPath string, recursive bool) ([]string, error) {
	var filePaths []string

	if recursive {
		walkError := filepath.WalkDir(directoryPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
			if accessError != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", walkedPath, accessError)
				if directoryEntry != nil && directoryEntry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if directoryEntry.IsDir() {
				return nil
			}
			filePaths = append(filePaths, walkedPath)
			return nil
		})
		if walkError != nil {
			return nil, fmt.Errorf(errorWalkFormat, directoryPath, walkError)
		}
		return filePaths, nil
	}

	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, fmt.Errorf(errorWalkFormat, directoryPath, readError)
	}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		filePaths = append(filePaths, filepath.Join(directoryPath, directoryEntry.Name()))
	}
	return filePaths, nil
}

// anchorPath joins a relative path to the configured working directory.
func anchorPath(pathValue, workingDirectory string) string {
	if workingDirectory == "" || filepath.IsAbs(pathValue) {
		return pathValue
	}
	return filepath.Join(workingDirectory, pathValue)
}
