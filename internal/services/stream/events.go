// Package stream defines the event model and producer for the print pipeline.
package stream

import (
	"time"

	"github.com/temirov/fpr/internal/types"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindFile    EventKind = "file"
	EventKindWarning EventKind = "warning"
	EventKindSummary EventKind = "summary"
	EventKindDone    EventKind = "done"
)

type Event struct {
	Version   int       `json:"version"`
	Kind      EventKind `json:"kind"`
	Path      string    `json:"path,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty"`

	File    *types.FileOutput `json:"file,omitempty"`
	Summary *SummaryEvent     `json:"summary,omitempty"`
	Message *LogEvent         `json:"message,omitempty"`
}

type SummaryEvent struct {
	Files  int    `json:"files"`
	Bytes  int64  `json:"bytes"`
	Tokens int    `json:"tokens,omitempty"`
	Model  string `json:"model,omitempty"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}
