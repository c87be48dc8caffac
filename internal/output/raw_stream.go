package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/types"
	"github.com/temirov/fpr/internal/utils"
)

type rawSummary struct {
	files  int
	bytes  int64
	tokens int
	model  string
}

func (summary *rawSummary) add(data *stream.SummaryEvent) {
	if data == nil {
		return
	}
	summary.files += data.Files
	summary.bytes += data.Bytes
	summary.tokens += data.Tokens
	if summary.model == "" && data.Model != "" && data.Tokens > 0 {
		summary.model = data.Model
	}
}

type rawStreamRenderer struct {
	stdout           io.Writer
	stderr           io.Writer
	separator        string
	workingDirectory string
	includeSummary   bool
	summary          rawSummary
	sawSummary       bool
	printedFiles     int
}

// NewRawStreamRenderer builds the default human-readable renderer. Each file
// is framed by a header naming it (relative to workingDirectory when
// possible) and files are divided by the separator line.
func NewRawStreamRenderer(stdout, stderr io.Writer, separator, workingDirectory string, includeSummary bool) StreamRenderer {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &rawStreamRenderer{
		stdout:           stdout,
		stderr:           stderr,
		separator:        separator,
		workingDirectory: workingDirectory,
		includeSummary:   includeSummary,
	}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindWarning:
		if event.Message != nil && renderer.stderr != nil {
			fmt.Fprintln(renderer.stderr, event.Message.Message)
		}
	case stream.EventKindFile:
		renderer.handleFile(event.File)
	case stream.EventKindSummary:
		renderer.summary.add(event.Summary)
		renderer.sawSummary = true
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	if renderer.includeSummary && renderer.sawSummary && renderer.stdout != nil {
		if renderer.printedFiles > 0 {
			fmt.Fprintln(renderer.stdout)
		}
		outputSummary := &types.OutputSummary{
			TotalFiles:  renderer.summary.files,
			TotalSize:   utils.FormatFileSize(renderer.summary.bytes),
			TotalTokens: renderer.summary.tokens,
			Model:       renderer.summary.model,
		}
		fmt.Fprintln(renderer.stdout, FormatSummaryLine(outputSummary))
	}
	return nil
}

func (renderer *rawStreamRenderer) handleFile(file *types.FileOutput) {
	if renderer.stdout == nil || file == nil {
		return
	}

	if renderer.printedFiles > 0 {
		fmt.Fprintf(renderer.stdout, "\n%s\n\n", renderer.separator)
	}
	renderer.printedFiles++

	displayPath := file.Path
	if renderer.workingDirectory != "" {
		displayPath = utils.RelativePathOrSelf(file.Path, renderer.workingDirectory)
	}
	fmt.Fprintf(renderer.stdout, headerFormat, displayPath)

	if file.Type == types.NodeTypeBinary {
		fmt.Fprintf(renderer.stdout, "%s%s\n", mimeTypeLabel, file.MimeType)
		fmt.Fprintln(renderer.stdout, binaryContentOmitted)
		return
	}

	fmt.Fprint(renderer.stdout, file.Content)
	if !strings.HasSuffix(file.Content, "\n") {
		fmt.Fprintln(renderer.stdout)
	}
}
