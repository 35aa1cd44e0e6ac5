package convertinfra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolomni/engine/pkg/errx"
)

const videoURL = "https://www.tiktok.com/@someone/video/7123456789"

func newResolver(baseURL string) *RapidAPIResolver {
	return NewRapidAPIResolver(RapidAPIConfig{
		Key:     "test-key",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, videoURL, r.URL.Query().Get("url"))
		assert.Equal(t, "1", r.URL.Query().Get("hd"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 0,
			"msg": "success",
			"data": {
				"title": "my clip",
				"cover": "https://cdn.example/cover.jpg",
				"play": "https://cdn.example/play.mp4",
				"hdplay": "https://cdn.example/stale-hd.mp4",
				"music": "https://cdn.example/music.mp3",
				"author": {"nickname": "someone", "avatar": "https://cdn.example/a.jpg"}
			}
		}`))
	}))
	defer srv.Close()

	meta, err := newResolver(srv.URL).Resolve(context.Background(), videoURL)
	require.NoError(t, err)

	assert.Equal(t, "my clip", meta.Title)
	assert.Equal(t, "https://cdn.example/cover.jpg", meta.Cover)
	assert.Equal(t, "someone", meta.Author.Nickname)
	assert.Equal(t, "https://cdn.example/play.mp4", meta.Play)
	assert.Equal(t, meta.Play, meta.HDPlay, "hd variant must reuse the play URL")
	assert.Equal(t, "https://cdn.example/music.mp3", meta.Music)
}

func TestResolveDefaultsTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 0, "data": {"play": "https://cdn.example/play.mp4"}}`))
	}))
	defer srv.Close()

	meta, err := newResolver(srv.URL).Resolve(context.Background(), videoURL)
	require.NoError(t, err)
	assert.Equal(t, "TikTok Video", meta.Title)
}

func TestResolveRejectsNonTikTokURL(t *testing.T) {
	r := newResolver("http://127.0.0.1:0")
	for _, raw := range []string{
		"https://example.com/watch",
		"https://nottiktok.com/video/1",
		"https://evil.com/?u=https://tiktok.com",
		"not a url",
		"",
	} {
		_, err := r.Resolve(context.Background(), raw)
		require.Error(t, err, raw)
		assert.True(t, errx.IsType(err, errx.TypeValidation), raw)
	}
}

func TestResolveAcceptsSubdomains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 0, "data": {"title": "ok"}}`))
	}))
	defer srv.Close()

	r := newResolver(srv.URL)
	for _, raw := range []string{
		"https://www.tiktok.com/@u/video/1",
		"https://vm.tiktok.com/ZMabc/",
		"https://tiktok.com/@u/video/1",
	} {
		_, err := r.Resolve(context.Background(), raw)
		assert.NoError(t, err, raw)
	}
}

func TestResolveVideoNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": -1, "msg": "video has been removed"}`))
	}))
	defer srv.Close()

	_, err := newResolver(srv.URL).Resolve(context.Background(), videoURL)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))

	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, "video has been removed", e.Details["upstream_msg"])
}

func TestResolveUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newResolver(srv.URL).Resolve(context.Background(), videoURL)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeExternal))
}

func TestResolveTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	r := NewRapidAPIResolver(RapidAPIConfig{
		Key:     "k",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	_, err := r.Resolve(context.Background(), videoURL)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeExternal))
}
