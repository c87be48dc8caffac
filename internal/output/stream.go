// Package output renders stream events in raw, JSON, or XML form.
package output

import (
	"github.com/temirov/fpr/internal/services/stream"
)

// StreamRenderer consumes pipeline events and produces formatted output.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
