package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/temirov/fpr/internal/output"
	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/types"
)

type jsonDocument struct {
	Files []struct {
		Path    string `json:"path"`
		Type    string `json:"type"`
		Content string `json:"content"`
		Tokens  int    `json:"tokens"`
	} `json:"files"`
	Summary *struct {
		TotalFiles int    `json:"totalFiles"`
		TotalSize  string `json:"totalSize"`
	} `json:"summary"`
}

func TestJSONStreamRendererProducesWellFormedDocument(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&stdout, nil, true)

	events := []stream.Event{
		{Kind: stream.EventKindStart},
		{Kind: stream.EventKindFile, File: &types.FileOutput{Path: "foo.txt", Type: types.NodeTypeFile, Content: "hello\n", Tokens: 2}},
		{Kind: stream.EventKindFile, File: &types.FileOutput{Path: "bar.txt", Type: types.NodeTypeFile, Content: "world\n"}},
		{Kind: stream.EventKindSummary, Summary: &stream.SummaryEvent{Files: 2, Bytes: 12}},
		{Kind: stream.EventKindDone},
	}
	for index, event := range events {
		if err := renderer.Handle(event); err != nil {
			t.Fatalf("handle event %d failed: %v", index, err)
		}
	}
	if err := renderer.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var document jsonDocument
	if err := json.Unmarshal(stdout.Bytes(), &document); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}
	if len(document.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(document.Files))
	}
	if document.Files[0].Path != "foo.txt" || document.Files[0].Content != "hello\n" || document.Files[0].Tokens != 2 {
		t.Fatalf("unexpected first file: %+v", document.Files[0])
	}
	if document.Summary == nil || document.Summary.TotalFiles != 2 {
		t.Fatalf("expected summary with 2 files, got %+v", document.Summary)
	}
}

func TestJSONStreamRendererEmptyRunIsStillValid(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&stdout, nil, false)

	for _, event := range []stream.Event{{Kind: stream.EventKindStart}, {Kind: stream.EventKindDone}} {
		if err := renderer.Handle(event); err != nil {
			t.Fatalf("handle failed: %v", err)
		}
	}
	if err := renderer.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var document jsonDocument
	if err := json.Unmarshal(stdout.Bytes(), &document); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}
	if len(document.Files) != 0 {
		t.Fatalf("expected no files, got %d", len(document.Files))
	}
}
