// Package archive packs named byte blobs into a single ZIP container.
package archive

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zip"
)

// ErrDuplicateEntry is returned when an entry name is added twice.
var ErrDuplicateEntry = errors.New("duplicate archive entry")

// Packer accumulates entries and serializes them into one ZIP blob. Not safe
// for concurrent use; a Packer belongs to a single conversion call.
type Packer struct {
	buf   bytes.Buffer
	zw    *zip.Writer
	names map[string]struct{}
}

// NewPacker creates an empty archive.
func NewPacker() *Packer {
	p := &Packer{names: make(map[string]struct{})}
	p.zw = zip.NewWriter(&p.buf)
	return p
}

// AddEntry appends a named entry. Entry names must be unique.
func (p *Packer) AddEntry(name string, data []byte) error {
	if _, exists := p.names[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEntry, name)
	}
	w, err := p.zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %q: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %q: %w", name, err)
	}
	p.names[name] = struct{}{}
	return nil
}

// Len reports the number of entries added so far.
func (p *Packer) Len() int {
	return len(p.names)
}

// Finalize closes the archive and returns its bytes. The Packer must not be
// used afterwards.
func (p *Packer) Finalize() ([]byte, error) {
	if err := p.zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return p.buf.Bytes(), nil
}
