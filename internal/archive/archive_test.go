package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	entries := map[string][]byte{
		"page-1.jpg": []byte("first page bytes"),
		"page-2.jpg": []byte("second page bytes"),
		"page-3.jpg": {0x00, 0xff, 0x10, 0x20},
	}

	p := NewPacker()
	for _, name := range []string{"page-1.jpg", "page-2.jpg", "page-3.jpg"} {
		require.NoError(t, p.AddEntry(name, entries[name]))
	}
	assert.Equal(t, 3, p.Len())

	blob, err := p.Finalize()
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, r.File, 3)

	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, entries[f.Name], got, f.Name)
	}
}

func TestDuplicateEntry(t *testing.T) {
	p := NewPacker()
	require.NoError(t, p.AddEntry("page-1.jpg", []byte("a")))

	err := p.AddEntry("page-1.jpg", []byte("b"))
	require.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestEmptyArchiveFinalizes(t *testing.T) {
	p := NewPacker()
	blob, err := p.Finalize()
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	assert.Empty(t, r.File)
}
