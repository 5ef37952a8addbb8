// Package sink persists composed sheet rasters. The composer itself never
// encodes or writes anything; storing a raster is the sink's job.
package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink durably stores one raster under a name and returns the location it
// was stored at.
type Sink interface {
	Store(name string, img image.Image) (string, error)
}

// DirSink writes sheets as PNG files under <Base>/<doc>/sheets/.
type DirSink struct {
	Base string
	Doc  string
}

// NewDirSink creates the output directory for a document's sheets.
func NewDirSink(base, doc string) (*DirSink, error) {
	dir := filepath.Join(base, doc, "sheets")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("could not create output directory %s: %w", dir, err)
	}
	return &DirSink{Base: base, Doc: doc}, nil
}

// Store encodes the raster as PNG and writes it to <Base>/<Doc>/sheets/<name>.png.
func (s *DirSink) Store(name string, img image.Image) (string, error) {
	path := filepath.Join(s.Base, s.Doc, "sheets", name+".png")
	f, err := os.Create(path) //nolint:gosec // path built from sink config, not raw user input
	if err != nil {
		return "", fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("could not encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close %s: %w", path, err)
	}
	return path, nil
}

// MemorySink keeps encoded sheets in memory, used by the web API to build a
// response without touching disk.
type MemorySink struct {
	mu     sync.Mutex
	sheets map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{sheets: make(map[string][]byte)}
}

// Store encodes the raster as PNG and keeps it under the given name.
func (s *MemorySink) Store(name string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("could not encode sheet %s: %w", name, err)
	}
	s.mu.Lock()
	s.sheets[name] = buf.Bytes()
	s.mu.Unlock()
	return name, nil
}

// Sheet returns the encoded PNG stored under name.
func (s *MemorySink) Sheet(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sheets[name]
	return data, ok
}

// Names lists stored sheet names in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.sheets))
	for name := range s.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
