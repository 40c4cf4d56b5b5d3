package ingest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source is one tabular input representing a single building's readings
type Source interface {
	// Name identifies the building the source belongs to
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource returns a source backed by a CSV file. Its name is the file's
// base name without extension.
func FileSource(path string) Source {
	return &fileSource{path: path}
}

// FileSources wraps each path in a FileSource, keeping order
func FileSources(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, FileSource(p))
	}
	return sources
}

func (s *fileSource) Name() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s *fileSource) String() string {
	return s.path
}

type readerSource struct {
	name string
	r    io.Reader
}

// ReaderSource returns a source reading from r under the given name.
// It can be opened once.
func ReaderSource(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

func (s *readerSource) Name() string {
	return s.name
}

func (s *readerSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}
