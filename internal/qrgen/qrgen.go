// Package qrgen renders deterministic QR code images.
package qrgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// Options controls the rendered image. Size is the output edge length in
// pixels; Margin is the quiet zone measured in modules.
type Options struct {
	Size   int
	Margin int
	Dark   color.NRGBA
	Light  color.NRGBA
}

// DefaultOptions matches the catalog's QR tool defaults.
func DefaultOptions() Options {
	return Options{
		Size:   1000,
		Margin: 2,
		Dark:   color.NRGBA{A: 255},
		Light:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Generate encodes payload as a QR code PNG. The module matrix is rendered
// manually so identical inputs always produce byte-identical output and the
// margin semantics are exact.
func Generate(payload string, opts Options) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}

	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	qr.DisableBorder = true
	modules := qr.Bitmap()

	n := len(modules)
	total := n + 2*opts.Margin
	scale := opts.Size / total
	if scale < 1 {
		scale = 1
	}
	offset := (opts.Size - total*scale) / 2

	img := image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	for y := 0; y < opts.Size; y++ {
		for x := 0; x < opts.Size; x++ {
			img.SetNRGBA(x, y, opts.Light)
		}
	}

	for my := 0; my < n; my++ {
		for mx := 0; mx < n; mx++ {
			if !modules[my][mx] {
				continue
			}
			x0 := offset + (mx+opts.Margin)*scale
			y0 := offset + (my+opts.Margin)*scale
			for y := y0; y < y0+scale; y++ {
				for x := x0; x < x0+scale; x++ {
					img.SetNRGBA(x, y, opts.Dark)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return buf.Bytes(), nil
}
