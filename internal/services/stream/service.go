package stream

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/temirov/fpr/internal/tokenizer"
	"github.com/temirov/fpr/internal/types"
	"github.com/temirov/fpr/internal/utils"
)

// FileOptions configures a streaming pass over resolved file paths.
type FileOptions struct {
	Paths          []string
	TokenCounter   tokenizer.Counter
	TokenModel     string
	IncludeSummary bool
}

type emitter struct {
	ctx context.Context
	out chan<- Event
}

func newEmitter(ctx context.Context, out chan<- Event) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return
	}
	_ = e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Level: "warning", Message: trimmed},
	})
}

type summaryTracker struct {
	files  int
	bytes  int64
	tokens int
	model  string
}

func (tracker *summaryTracker) add(size int64, tokens int, model string) {
	tracker.files++
	tracker.bytes += size
	tracker.tokens += tokens
	if tracker.model == "" && model != "" && tokens > 0 {
		tracker.model = model
	}
}

func (tracker *summaryTracker) summary() *SummaryEvent {
	return &SummaryEvent{
		Files:  tracker.files,
		Bytes:  tracker.bytes,
		Tokens: tracker.tokens,
		Model:  tracker.model,
	}
}

// StreamFiles reads every path in opts.Paths in order and emits one file
// event per readable file. Unreadable files become warnings, not failures.
func StreamFiles(ctx context.Context, opts FileOptions, out chan<- Event) error {
	emitter := newEmitter(ctx, out)
	if err := emitter.send(Event{Kind: EventKindStart}); err != nil {
		return err
	}

	tracker := &summaryTracker{}

	for _, filePath := range opts.Paths {
		fileOutput, inspected := inspectFile(filePath, opts, emitter.warn)
		if !inspected {
			continue
		}
		if err := emitter.send(Event{Kind: EventKindFile, Path: filePath, File: &fileOutput}); err != nil {
			return err
		}
		tracker.add(fileOutput.SizeBytes, fileOutput.Tokens, fileOutput.Model)
	}

	if opts.IncludeSummary {
		if err := emitter.send(Event{Kind: EventKindSummary, Summary: tracker.summary()}); err != nil {
			return err
		}
	}
	return emitter.send(Event{Kind: EventKindDone})
}

// inspectFile reads one file and assembles its FileOutput. The boolean result
// reports whether the file could be inspected at all.
func inspectFile(filePath string, opts FileOptions, warn func(string, string)) (types.FileOutput, bool) {
	fileInformation, statError := os.Stat(filePath)
	if statError != nil {
		warn(filePath, fmt.Sprintf("Warning: skipping %s: %v", filePath, statError))
		return types.FileOutput{}, false
	}

	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		warn(filePath, fmt.Sprintf("Warning: failed to read %s: %v", filePath, readError))
		return types.FileOutput{}, false
	}

	fileType := types.NodeTypeFile
	fileContent := string(fileBytes)
	if utils.IsBinary(fileBytes) {
		fileType = types.NodeTypeBinary
		fileContent = utils.EmptyString
	}

	fileOutput := types.FileOutput{
		Path:         filePath,
		Type:         fileType,
		Content:      fileContent,
		Size:         utils.FormatFileSize(fileInformation.Size()),
		SizeBytes:    fileInformation.Size(),
		LastModified: utils.FormatTimestamp(fileInformation.ModTime()),
		MimeType:     utils.DetectMimeType(filePath),
	}

	if opts.TokenCounter != nil && fileType != types.NodeTypeBinary {
		countResult, tokenError := tokenizer.CountBytes(opts.TokenCounter, fileBytes)
		if tokenError != nil {
			warn(filePath, fmt.Sprintf("Warning: failed to count tokens for %s: %v", filePath, tokenError))
		} else if countResult.Counted {
			fileOutput.Tokens = countResult.Tokens
			if fileOutput.Tokens > 0 && opts.TokenModel != "" {
				fileOutput.Model = opts.TokenModel
			}
		}
	}

	return fileOutput, true
}
