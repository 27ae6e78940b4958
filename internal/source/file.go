// Package source delivers parsed log entries from a file or a pipe, with
// optional live-follow tailing. Batches arrive on a channel the UI event
// loop drains once per frame; the view-state core only ever sees appends.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wethinkt/seslog/internal/trace"
	"github.com/wethinkt/seslog/internal/tuilog"
)

// Batch is one delivery of parsed entries. Reset means the file shrank or
// was replaced; the receiver must drop all prior state, the batch holds the
// re-read file from the top.
type Batch struct {
	Entries []trace.Entry
	Reset   bool
}

// DefaultDebounce is the follow-mode settle delay before re-reading a file
// after a write event.
const DefaultDebounce = 200 * time.Millisecond

// File reads a JSONL log file and, in follow mode, tails bytes appended to
// it. Reads resume from the last byte offset; a trailing partial line is
// carried until its newline arrives, so a writer flushing mid-line never
// yields a malformed entry.
type File struct {
	path     string
	debounce time.Duration

	batches chan Batch

	mu      sync.Mutex
	offset  int64
	carry   []byte
	lineNum int

	watcher   *fsnotify.Watcher
	timer     *time.Timer
	closeOnce sync.Once
	done      chan struct{}
}

// NewFile creates a file source. A non-positive debounce uses
// DefaultDebounce.
func NewFile(path string, debounce time.Duration) *File {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &File{
		path:     path,
		debounce: debounce,
		batches:  make(chan Batch, 16),
		done:     make(chan struct{}),
	}
}

// Batches returns the delivery channel. Closed when the source stops.
func (f *File) Batches() <-chan Batch { return f.batches }

// Load reads the whole file and returns its entries, recording the byte
// offset so a later Follow resumes where Load stopped.
func (f *File) Load() ([]trace.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, _, err := f.readNew()
	return entries, err
}

// Follow starts tailing the file until ctx is cancelled or Close is called.
// The parent directory is watched rather than the file itself so atomic
// replace-by-rename keeps working.
func (f *File) Follow(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	f.watcher = watcher
	go f.watchLoop(ctx)
	return nil
}

// Close stops the follow loop and closes the batch channel.
func (f *File) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.done)
		if f.watcher != nil {
			err = f.watcher.Close()
		}
	})
	return err
}

func (f *File) watchLoop(ctx context.Context) {
	defer close(f.batches)
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce rapid writes; only the last event within the
			// window triggers a read.
			f.mu.Lock()
			if f.timer != nil {
				f.timer.Stop()
			}
			f.timer = time.AfterFunc(f.debounce, f.deliverTail)
			f.mu.Unlock()

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			tuilog.Log.Warn("source: fsnotify error", "error", err)

		case <-f.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// deliverTail reads newly appended bytes and sends them as a batch. Runs on
// the debounce timer goroutine.
func (f *File) deliverTail() {
	f.mu.Lock()
	entries, reset, err := f.readNew()
	f.mu.Unlock()
	if err != nil {
		tuilog.Log.Warn("source: tail read failed", "path", f.path, "error", err)
		return
	}
	if len(entries) == 0 && !reset {
		return
	}
	select {
	case f.batches <- Batch{Entries: entries, Reset: reset}:
	case <-f.done:
	}
}

// readNew reads from the recorded offset to EOF, carrying any trailing
// partial line. A file smaller than the offset means truncation or replace;
// state resets and the whole file is re-read. Caller holds f.mu.
func (f *File) readNew() ([]trace.Entry, bool, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, false, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, false, fmt.Errorf("stat log file: %w", err)
	}

	reset := info.Size() < f.offset
	if reset {
		f.offset = 0
		f.carry = nil
		f.lineNum = 0
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, reset, fmt.Errorf("seek log file: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, reset, fmt.Errorf("read log file: %w", err)
	}
	f.offset += int64(len(data))

	buf := append(f.carry, data...)
	var entries []trace.Entry
	for {
		nl := bytes.IndexByte(buf, '\n')
		if nl < 0 {
			break
		}
		line := buf[:nl]
		buf = buf[nl+1:]
		f.lineNum++
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		entries = append(entries, trace.ParseLine(line, f.lineNum))
	}
	f.carry = append([]byte(nil), buf...)
	return entries, reset, nil
}
