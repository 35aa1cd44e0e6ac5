package pdf

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// ErrTooManyPages is returned when a document exceeds the configured render
// limit.
var ErrTooManyPages = errors.New("page count exceeds render limit")

// DefaultMaxPages bounds how many pages one rasterization call may render.
const DefaultMaxPages = 200

// RasterConfig is injected at construction; there is no ambient rasterizer
// state.
type RasterConfig struct {
	// MaxPages caps pages rendered per call. Zero means DefaultMaxPages.
	MaxPages int
}

// Rasterizer renders document pages to pixel surfaces.
type Rasterizer struct {
	cfg RasterConfig
}

// NewRasterizer creates a rasterizer.
func NewRasterizer(cfg RasterConfig) *Rasterizer {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	return &Rasterizer{cfg: cfg}
}

// RenderPages renders every page at the given scale (1.0 = 72 dpi) and
// returns one image per page, in page order. A failure on any single page
// fails the whole batch; a partial page set would produce a misleading
// archive downstream.
func (r *Rasterizer) RenderPages(data []byte, scale float64) ([]image.Image, error) {
	if scale <= 0 {
		scale = 1.0
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount > r.cfg.MaxPages {
		return nil, fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, pageCount, r.cfg.MaxPages)
	}

	images := make([]image.Image, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, 72*scale)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
