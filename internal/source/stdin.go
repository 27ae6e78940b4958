package source

import (
	"context"
	"io"

	"github.com/wethinkt/seslog/internal/trace"
	"github.com/wethinkt/seslog/internal/tuilog"
)

// Reader streams entries from an io.Reader, typically a pipe on stdin.
// There is no offset to resume from; entries are delivered as they arrive
// and the channel closes at EOF.
type Reader struct {
	r       io.Reader
	batches chan Batch
}

// NewReader creates a streaming source over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:       r,
		batches: make(chan Batch, 16),
	}
}

// Batches returns the delivery channel. Closed at EOF or cancellation.
func (s *Reader) Batches() <-chan Batch { return s.batches }

// Start begins reading in a goroutine.
func (s *Reader) Start(ctx context.Context) {
	go func() {
		defer close(s.batches)
		parser := trace.NewParser(s.r)
		for {
			entry, err := parser.Next()
			if err != nil {
				tuilog.Log.Warn("source: stdin read failed", "error", err)
				return
			}
			if entry == nil {
				tuilog.Log.Info("source: stdin closed", "lines", parser.LineNum())
				return
			}
			select {
			case s.batches <- Batch{Entries: []trace.Entry{*entry}}:
			case <-ctx.Done():
				return
			}
		}
	}()
}
