package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/types"
	"github.com/temirov/fpr/internal/utils"
)

type xmlStreamRenderer struct {
	stdout         io.Writer
	stderr         io.Writer
	includeSummary bool
	encoder        *xml.Encoder
	started        bool
	summary        *stream.SummaryEvent
}

// NewXMLStreamRenderer streams rendered files as an XML document rooted at
// <files>.
func NewXMLStreamRenderer(stdout, stderr io.Writer, includeSummary bool) StreamRenderer {
	return &xmlStreamRenderer{stdout: stdout, stderr: stderr, includeSummary: includeSummary}
}

func (renderer *xmlStreamRenderer) Handle(event stream.Event) error {
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

func (renderer *xmlStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	if err := renderer.ensureEncoder(); err != nil {
		return err
	}
	if renderer.includeSummary && renderer.summary != nil {
		outputSummary := types.OutputSummary{
			TotalFiles:  renderer.summary.Files,
			TotalSize:   utils.FormatFileSize(renderer.summary.Bytes),
			TotalTokens: renderer.summary.Tokens,
			Model:       renderer.summary.Model,
		}
		if err := renderer.encoder.EncodeElement(outputSummary, xml.StartElement{Name: xml.Name{Local: "summary"}}); err != nil {
			return err
		}
	}
	if err := renderer.encoder.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(renderer.stdout, "\n</files>\n")
	return err
}

func (renderer *xmlStreamRenderer) ensureEncoder() error {
	if renderer.started {
		return nil
	}
	if _, err := io.WriteString(renderer.stdout, xml.Header); err != nil {
		return err
	}
	if _, err := io.WriteString(renderer.stdout, "<files>"); err != nil {
		return err
	}
	renderer.encoder = xml.NewEncoder(renderer.stdout)
	renderer.encoder.Indent("", "  ")
	renderer.started = true
	return nil
}

func (renderer *xmlStreamRenderer) handleFile(file *types.FileOutput) error {
	if renderer.stdout == nil || file == nil {
		return nil
	}
	if err := renderer.ensureEncoder(); err != nil {
		return err
	}
	return renderer.encoder.Encode(file)
}
