// Package source loads fragment sets from files and URLs.
package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/afs"
)

// ErrEmpty is returned when a location holds no fragments.
var ErrEmpty = errors.New("source: no fragments")

// Loader reads fragment sets through an afs.Service, so any scheme afs
// supports (local paths, file://, mem://, http://, ...) can be used.
type Loader struct {
	fs afs.Service
}

// NewLoader creates a Loader backed by the default afs service.
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads location and parses it with Parse.
func (l *Loader) Load(ctx context.Context, location string) ([]string, error) {
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("source: download %s: %w", location, err)
	}
	fragments, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", location, err)
	}
	return fragments, nil
}

// Parse decodes a fragment set. A payload whose first non-space byte is '['
// is read as a JSON array of strings and kept verbatim, empty strings
// included. Anything else is read as one fragment per line; CRLF endings are
// accepted and blank lines are skipped.
func Parse(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	if trimmed[0] == '[' {
		var fragments []string
		if err := json.Unmarshal(trimmed, &fragments); err != nil {
			return nil, fmt.Errorf("decode JSON fragment list: %w", err)
		}
		if len(fragments) == 0 {
			return nil, ErrEmpty
		}
		return fragments, nil
	}

	var fragments []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))
		if len(line) == 0 {
			continue
		}
		fragments = append(fragments, string(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fragment lines: %w", err)
	}
	if len(fragments) == 0 {
		return nil, ErrEmpty
	}
	return fragments, nil
}
