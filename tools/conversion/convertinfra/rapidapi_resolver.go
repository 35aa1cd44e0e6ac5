package convertinfra

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/toolomni/engine/tools/conversion"
)

const (
	defaultRapidAPIHost = "tiktok-video-no-watermark2.p.rapidapi.com"
	defaultTimeout      = 15 * time.Second

	// Upstream responses are small JSON documents; cap reads defensively.
	maxResponseBytes = 2 << 20
)

// RapidAPIConfig configures the TikTok metadata resolver.
type RapidAPIConfig struct {
	Key  string
	Host string

	// BaseURL overrides the https://<Host> endpoint. Leave empty in
	// production.
	BaseURL string

	// Timeout bounds the whole upstream call, including body read.
	Timeout time.Duration
}

// RapidAPIResolver resolves TikTok URLs against the no-watermark RapidAPI
// service.
type RapidAPIResolver struct {
	cfg    RapidAPIConfig
	client *http.Client
}

// NewRapidAPIResolver creates a resolver. Zero-value Host and Timeout fall
// back to defaults.
func NewRapidAPIResolver(cfg RapidAPIConfig) *RapidAPIResolver {
	if cfg.Host == "" {
		cfg.Host = defaultRapidAPIHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &RapidAPIResolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Resolve implements conversion.VideoResolver.
func (r *RapidAPIResolver) Resolve(ctx context.Context, rawURL string) (*conversion.VideoMetadata, error) {
	if !isTikTokURL(rawURL) {
		return nil, conversion.ErrInvalidURL().WithDetail("url", rawURL)
	}

	endpoint := r.cfg.BaseURL
	if endpoint == "" {
		endpoint = "https://" + r.cfg.Host
	}
	endpoint += "/?url=" + url.QueryEscape(rawURL) + "&hd=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeUpstreamFailed, err)
	}
	req.Header.Set("x-rapidapi-key", r.cfg.Key)
	req.Header.Set("x-rapidapi-host", r.cfg.Host)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeUpstreamFailed, err).
			WithDetail("url", rawURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeUpstreamFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, conversion.ErrUpstreamFailed().
			WithDetail("status", resp.StatusCode).
			WithDetail("url", rawURL)
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() || gjson.GetBytes(body, "code").Int() != 0 {
		return nil, conversion.ErrVideoNotFound().
			WithDetail("url", rawURL).
			WithDetail("upstream_msg", gjson.GetBytes(body, "msg").String())
	}

	title := data.Get("title").String()
	if title == "" {
		title = "TikTok Video"
	}

	play := data.Get("play").String()
	return &conversion.VideoMetadata{
		Title: title,
		Cover: data.Get("cover").String(),
		Author: conversion.Author{
			Nickname: data.Get("author.nickname").String(),
			Avatar:   data.Get("author.avatar").String(),
		},
		Play: play,
		// The hdplay variant is frequently missing or stale upstream; the
		// play URL is used for HD as well.
		HDPlay: play,
		Music:  data.Get("music").String(),
	}, nil
}

// isTikTokURL accepts URLs whose hostname is tiktok.com or a subdomain of it.
// A substring check would accept tiktok.com appearing in query strings of
// arbitrary hosts.
func isTikTokURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com")
}
