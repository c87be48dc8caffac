package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/types"
	"github.com/temirov/fpr/internal/utils"
)

type jsonStreamRenderer struct {
	stdout         io.Writer
	stderr         io.Writer
	includeSummary bool
	arrayOpened    bool
	fileCount      int
	summary        *stream.SummaryEvent
}

// NewJSONStreamRenderer streams rendered files as a JSON document with a
// "files" array and an optional trailing "summary" object.
func NewJSONStreamRenderer(stdout, stderr io.Writer, includeSummary bool) StreamRenderer {
	return &jsonStreamRenderer{
		stdout:         stdout,
		stderr:         stderr,
		includeSummary: includeSummary,
	}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindWarning:
		if event.Message != nil && renderer.stderr != nil {
			fmt.Fprintln(renderer.stderr, event.Message.Message)
		}
		return nil
	case stream.EventKindFile:
		return renderer.handleFile(event.File)
	case stream.EventKindSummary:
		renderer.summary = event.Summary
		return nil
	default:
		return nil
	}
}

func (renderer *jsonStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	if err := renderer.ensureArrayOpened(); err != nil {
		return err
	}
	if _, err := io.WriteString(renderer.stdout, "\n  ]"); err != nil {
		return err
	}
	if renderer.includeSummary && renderer.summary != nil {
		outputSummary := types.OutputSummary{
			TotalFiles:  renderer.summary.Files,
			TotalSize:   utils.FormatFileSize(renderer.summary.Bytes),
			TotalTokens: renderer.summary.Tokens,
			Model:       renderer.summary.Model,
		}
		encodedSummary, encodeError := json.Marshal(outputSummary)
		if encodeError != nil {
			return encodeError
		}
		if _, err := fmt.Fprintf(renderer.stdout, ",\n  \"summary\": %s", encodedSummary); err != nil {
			return err
		}
	}
	_, err := io.WriteString(renderer.stdout, "\n}\n")
	return err
}

func (renderer *jsonStreamRenderer) ensureArrayOpened() error {
	if renderer.arrayOpened {
		return nil
	}
	if _, err := io.WriteString(renderer.stdout, "{\n  \"files\": ["); err != nil {
		return err
	}
	renderer.arrayOpened = true
	return nil
}

func (renderer *jsonStreamRenderer) handleFile(file *types.FileOutput) error {
	if renderer.stdout == nil || file == nil {
		return nil
	}
	if err := renderer.ensureArrayOpened(); err != nil {
		return err
	}
	encodedFile, encodeError := json.Marshal(file)
	if encodeError != nil {
		return encodeError
	}
	prefix := "\n    "
	if renderer.fileCount > 0 {
		prefix = ",\n    "
	}
	renderer.fileCount++
	_, err := fmt.Fprintf(renderer.stdout, "%s%s", prefix, encodedFile)
	return err
}
