package output_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/temirov/fpr/internal/output"
	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/types"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"files"`
	Files   []struct {
		Path    string `xml:"path,attr"`
		Type    string `xml:"type,attr"`
		Content string `xml:"content"`
	} `xml:"file"`
	Summary *struct {
		TotalFiles int `xml:"totalFiles"`
	} `xml:"summary"`
}

func TestXMLStreamRendererProducesWellFormedDocument(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewXMLStreamRenderer(&stdout, nil, true)

	events := []stream.Event{
		{Kind: stream.EventKindStart},
		{Kind: stream.EventKindFile, File: &types.FileOutput{Path: "foo.txt", Type: types.NodeTypeFile, Content: "hello\n"}},
		{Kind: stream.EventKindSummary, Summary: &stream.SummaryEvent{Files: 1, Bytes: 6}},
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

	if !strings.HasPrefix(stdout.String(), xml.Header) {
		t.Fatalf("expected XML header, got %q", stdout.String())
	}

	var document xmlDocument
	if err := xml.Unmarshal(stdout.Bytes(), &document); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, stdout.String())
	}
	if len(document.Files) != 1 || document.Files[0].Path != "foo.txt" {
		t.Fatalf("unexpected files: %+v", document.Files)
	}
	if document.Summary == nil || document.Summary.TotalFiles != 1 {
		t.Fatalf("expected summary with 1 file, got %+v", document.Summary)
	}
}
