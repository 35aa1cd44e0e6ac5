package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF synthesizes a minimal but fully valid PDF with the given page size,
// computing xref offsets so strict parsers accept it.
func buildPDF(t *testing.T, pages int, mediaBox int) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(s string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(s)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := ""
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 3+i)
	}
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, pages))

	for i := 0; i < pages; i++ {
		writeObj(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R >>\nendobj\n",
			3+i, mediaBox, mediaBox, 3+pages+i))
	}
	for i := 0; i < pages; i++ {
		stream := "q 1 0 0 1 0 0 cm Q\n"
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
			3+pages+i, len(stream), stream))
	}

	xrefOffset := buf.Len()
	objCount := 2 + 2*pages
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n0000000000 65535 f \n", objCount+1))
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset))
	return buf.Bytes()
}

func smallJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	codec := NewCodec()
	n, err := codec.PageCount(buildPDF(t, 3, 200))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageCountRejectsGarbage(t *testing.T) {
	codec := NewCodec()
	_, err := codec.PageCount([]byte("not a pdf at all"))
	require.Error(t, err)
}

func TestMergeSumsPages(t *testing.T) {
	codec := NewCodec()
	merged, err := codec.Merge([][]byte{
		buildPDF(t, 2, 200),
		buildPDF(t, 3, 200),
	})
	require.NoError(t, err)

	n, err := codec.PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMergePreservesInputOrder(t *testing.T) {
	codec := NewCodec()
	raster := NewRasterizer(RasterConfig{})

	// Distinct page sizes let us observe ordering after the merge.
	merged, err := codec.Merge([][]byte{
		buildPDF(t, 1, 100),
		buildPDF(t, 2, 300),
	})
	require.NoError(t, err)

	images, err := raster.RenderPages(merged, 1.0)
	require.NoError(t, err)
	require.Len(t, images, 3)

	assert.Equal(t, 100, images[0].Bounds().Dx(), "page 1 comes from the first input")
	assert.Equal(t, 300, images[1].Bounds().Dx(), "pages 2-3 come from the second input")
	assert.Equal(t, 300, images[2].Bounds().Dx())
}

func TestMergeRejectsGarbage(t *testing.T) {
	codec := NewCodec()
	_, err := codec.Merge([][]byte{
		buildPDF(t, 1, 200),
		[]byte("garbage"),
	})
	require.Error(t, err)
}

func TestRepackStaysReadable(t *testing.T) {
	codec := NewCodec()
	out, err := codec.Repack(buildPDF(t, 2, 200))
	require.NoError(t, err)

	n, err := codec.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFromImages(t *testing.T) {
	codec := NewCodec()
	out, err := codec.FromImages([][]byte{
		smallJPEG(t, 60, 80),
		smallJPEG(t, 80, 60),
	})
	require.NoError(t, err)

	n, err := codec.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRenderPagesCountAndScale(t *testing.T) {
	raster := NewRasterizer(RasterConfig{})
	images, err := raster.RenderPages(buildPDF(t, 2, 200), 1.5)
	require.NoError(t, err)
	require.Len(t, images, 2)

	// 200pt page at 1.5x scale renders 300px wide.
	assert.Equal(t, 300, images[0].Bounds().Dx())
	assert.Equal(t, 300, images[0].Bounds().Dy())
}

func TestRenderPagesHonorsLimit(t *testing.T) {
	raster := NewRasterizer(RasterConfig{MaxPages: 1})
	_, err := raster.RenderPages(buildPDF(t, 2, 200), 1.0)
	require.ErrorIs(t, err, ErrTooManyPages)
}

func TestRenderPagesRejectsGarbage(t *testing.T) {
	raster := NewRasterizer(RasterConfig{})
	_, err := raster.RenderPages([]byte("still not a pdf"), 1.0)
	require.Error(t, err)
}
