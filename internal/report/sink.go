package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink is where rendered artifacts end up
type Sink interface {
	// Prepare makes the sink ready to accept writes. It is idempotent.
	Prepare(ctx context.Context) error
	Write(ctx context.Context, name string, data []byte) error
}

// DirSink writes artifacts into a local directory
type DirSink struct {
	Dir string
}

// NewDirSink creates a sink rooted at dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Prepare(_ context.Context) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.Dir, err)
	}
	return nil
}

func (s *DirSink) Write(_ context.Context, name string, data []byte) error {
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *DirSink) String() string {
	return s.Dir
}

// MemorySink keeps artifacts in memory
type MemorySink struct {
	mu       sync.Mutex
	prepared bool
	files    map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) Prepare(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared = true
	return nil
}

func (s *MemorySink) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.prepared {
		return errors.New("memory sink not prepared")
	}
	s.files[name] = append([]byte(nil), data...)
	return nil
}

// Prepared reports whether Prepare was called
func (s *MemorySink) Prepared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepared
}

// File returns the contents written under name
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Names lists written artifacts in ascending order
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MultiSink fans writes out to several sinks
type MultiSink []Sink

func (m MultiSink) Prepare(ctx context.Context) error {
	for _, s := range m {
		if err := s.Prepare(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Write(ctx context.Context, name string, data []byte) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, name, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
