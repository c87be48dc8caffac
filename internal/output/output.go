package output

import (
	"fmt"

	"github.com/temirov/fpr/internal/types"
)

const (
	// DefaultSeparator is the line printed between files in raw output.
	DefaultSeparator = "---"

	binaryContentOmitted = "(binary content omitted)"
	mimeTypeLabel        = "Mime Type: "
	headerFormat         = "=== %s ===\n"
)

// FormatSummaryLine renders the aggregate summary in a single human-readable line.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	extra := ""
	if summary.TotalTokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, extra, modelSuffix)
}
