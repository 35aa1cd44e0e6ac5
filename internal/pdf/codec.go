// Package pdf provides the document codec and page rasterizer used by the
// PDF tools. All operations work on in-memory byte slices; nothing touches
// disk.
package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Codec loads, merges, repacks and builds PDF documents.
type Codec struct {
	conf *model.Configuration
}

// NewCodec creates a codec with relaxed validation, so mildly out-of-spec
// documents from consumer tools still load.
func NewCodec() *Codec {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Codec{conf: conf}
}

// Merge concatenates the given documents into one. Input order and intra-file
// page order are preserved. The caller guarantees len(inputs) >= 2.
func (c *Codec) Merge(inputs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(inputs))
	for i, in := range inputs {
		readers[i] = bytes.NewReader(in)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, c.conf); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	return buf.Bytes(), nil
}

// Repack rewrites the document with optimized object streams. Content is
// untouched; this is the low-compression tier.
func (c *Codec) Repack(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(input), &buf, c.conf); err != nil {
		return nil, fmt.Errorf("repack document: %w", err)
	}
	return buf.Bytes(), nil
}

// FromImages builds a new document with one full-bleed page per image, in
// input order. Used by the medium/high compression tiers to re-embed
// rasterized pages.
func (c *Codec) FromImages(images [][]byte) ([]byte, error) {
	imp, err := api.Import("pos:full", types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("import config: %w", err)
	}
	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = bytes.NewReader(img)
	}
	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, c.conf); err != nil {
		return nil, fmt.Errorf("embed page images: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount reports the number of pages in the document.
func (c *Codec) PageCount(input []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(input), c.conf)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
