// Package imaging implements the pixel-level transforms behind the image
// tools: decoding, resampling, sharpening, re-encoding and the composed
// pipelines built from them.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when input bytes are not in a decodable
// image encoding.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is a target encoding for Encode.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Quality selects the resampling filter used by Resize.
type Quality int

const (
	// QualityDraft uses fast bilinear interpolation.
	QualityDraft Quality = iota
	// QualityHigh uses Catmull-Rom, a smooth bicubic-class kernel.
	QualityHigh
)

const (
	upscaleFactor     = 2
	upscaleQuality    = 0.95
	convertQuality    = 0.95
	compressPhotoQ    = 0.6
	compressGraphicsQ = 0.8
)

// Decode parses image bytes into a pixel surface, reporting the source
// encoding name ("jpeg", "png", "gif", "bmp", "tiff", "webp").
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, format, nil
}

// Resize scales src to width x height using the filter selected by q.
func Resize(src image.Image, width, height int, q Quality) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler := draw.ApproxBiLinear
	if q == QualityHigh {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// sharpenKernel is applied row-major over a 3x3 neighborhood.
var sharpenKernel = [9]int{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// Sharpen applies the fixed 3x3 sharpening convolution over the RGB channels.
// Alpha is passed through unchanged and out-of-bounds samples clamp to the
// nearest edge pixel.
func Sharpen(src image.Image) *image.NRGBA {
	in := toNRGBA(src)
	b := in.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sy := clampInt(y+ky, 0, h-1)
					sx := clampInt(x+kx, 0, w-1)
					wt := sharpenKernel[(ky+1)*3+(kx+1)]
					off := in.PixOffset(sx, sy)
					r += int(in.Pix[off]) * wt
					g += int(in.Pix[off+1]) * wt
					bl += int(in.Pix[off+2]) * wt
				}
			}
			dst := out.PixOffset(x, y)
			out.Pix[dst] = clampByte(r)
			out.Pix[dst+1] = clampByte(g)
			out.Pix[dst+2] = clampByte(bl)
			out.Pix[dst+3] = in.Pix[in.PixOffset(x, y)+3]
		}
	}
	return out
}

// Encode serializes img in the target format. quality is a 0.0-1.0 scalar and
// is clamped into that range; it only affects lossy formats.
func Encode(img image.Image, f Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		q := int(math.Round(clampFloat(quality, 0, 1) * 100))
		if q < 1 {
			q = 1
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return buf.Bytes(), nil
}

// Upscale2x doubles the image dimensions with high-quality resampling, then
// sharpens to restore perceived detail, and re-encodes as JPEG.
func Upscale2x(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	resized := Resize(img, b.Dx()*upscaleFactor, b.Dy()*upscaleFactor, QualityHigh)
	return Encode(Sharpen(resized), FormatJPEG, upscaleQuality)
}

// Compress re-encodes the image at its original dimensions as lossy JPEG.
// PNG sources (flat graphics) get a gentler quality factor than photographic
// sources; the dominant size win is the lossy re-encode itself.
func Compress(data []byte) ([]byte, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	quality := compressPhotoQ
	if format == "png" {
		quality = compressGraphicsQ
	}
	return Encode(img, FormatJPEG, quality)
}

// ConvertTo re-encodes the image in the target format without resizing.
func ConvertTo(data []byte, f Format) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Encode(img, f, convertQuality)
}

// RemoveBackground makes the background transparent and returns PNG bytes.
// The background is estimated from the border: every border pixel close to the
// average corner color seeds a flood fill, so enclosed regions of a similar
// color survive.
func RemoveBackground(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	out := toNRGBA(img)
	b := out.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Encode(out, FormatPNG, 1)
	}

	bgR, bgG, bgB := cornerAverage(out)
	const tolerance = 48

	match := func(x, y int) bool {
		off := out.PixOffset(x, y)
		return colorDistance(out.Pix[off], out.Pix[off+1], out.Pix[off+2], bgR, bgG, bgB) <= tolerance
	}

	visited := make([]bool, w*h)
	var queue []int
	push := func(x, y int) {
		idx := y*w + x
		if !visited[idx] && match(x, y) {
			visited[idx] = true
			queue = append(queue, idx)
		}
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := idx%w, idx/w
		out.Pix[out.PixOffset(x, y)+3] = 0
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}

	return Encode(out, FormatPNG, 1)
}

func cornerAverage(img *image.NRGBA) (uint8, uint8, uint8) {
	b := img.Bounds()
	corners := [4][2]int{
		{0, 0},
		{b.Dx() - 1, 0},
		{0, b.Dy() - 1},
		{b.Dx() - 1, b.Dy() - 1},
	}
	var r, g, bl int
	for _, c := range corners {
		off := img.PixOffset(c[0], c[1])
		r += int(img.Pix[off])
		g += int(img.Pix[off+1])
		bl += int(img.Pix[off+2])
	}
	return uint8(r / 4), uint8(g / 4), uint8(bl / 4)
}

func colorDistance(r1, g1, b1, r2, g2, b2 uint8) int {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return (d(r1, r2) + d(g1, g2) + d(b1, b2)) / 3
}

// toNRGBA returns a zero-origin NRGBA view of img. Callers index Pix with
// zero-based PixOffset, so an NRGBA with a shifted Min (a SubImage) must be
// copied, not reused.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
