// Package convertapi exposes the conversion dispatcher over HTTP.
package convertapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/toolomni/engine/pkg/logx"
	"github.com/toolomni/engine/tools/catalog"
	"github.com/toolomni/engine/tools/conversion"
	"github.com/toolomni/engine/tools/conversion/convertsrv"
)

const (
	// Upload ceiling per file; multi-file uploads may total more.
	maxUploadBytes = 50 * 1024 * 1024

	downloadTimeout = 60 * time.Second
)

type ConvertHandlers struct {
	service  *convertsrv.Service
	download *http.Client
}

func NewConvertHandlers(service *convertsrv.Service) *ConvertHandlers {
	return &ConvertHandlers{
		service:  service,
		download: &http.Client{Timeout: downloadTimeout},
	}
}

func (h *ConvertHandlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/convert/files", h.ConvertFiles) // File tools (multipart)
	api.Post("/convert/url", h.ConvertURL)     // URL tools (JSON)
	api.Post("/convert/text", h.ConvertText)   // Text tools (JSON)
	api.Get("/download", h.Download)           // Remote media proxy
	api.Get("/tools", h.ListTools)             // Public tool catalog
}

// ============================================================================
// Conversion Handlers
// ============================================================================

// ConvertFiles runs a file-consuming tool over uploaded files.
// POST /api/convert/files (multipart: action, files, compression_level?)
func (h *ConvertHandlers) ConvertFiles(c *fiber.Ctx) error {
	action, err := conversion.ParseAction(c.FormValue("action"))
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart form is required",
		})
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one file is required",
		})
	}

	files := make([]conversion.InputFile, 0, len(uploads))
	for _, fh := range uploads {
		if fh.Size > maxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error":    "file too large",
				"file":     fh.Filename,
				"max_size": "50MB",
			})
		}

		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to open uploaded file",
				"file":  fh.Filename,
			})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to read uploaded file",
				"file":  fh.Filename,
			})
		}

		files = append(files, conversion.InputFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	opts := conversion.Options{
		CompressionLevel: conversion.ParseCompressionLevel(c.FormValue("compression_level")),
	}

	res, err := h.service.ConvertFiles(c.Context(), action, files, opts)
	if err != nil {
		return err
	}
	return sendArtifact(c, res)
}

// ConvertURL runs a URL-consuming tool.
// POST /api/convert/url
func (h *ConvertHandlers) ConvertURL(c *fiber.Ctx) error {
	var req conversion.ConvertURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	action, err := conversion.ParseAction(req.Action)
	if err != nil {
		return err
	}

	res, err := h.service.ConvertURL(c.Context(), action, req.URL)
	if err != nil {
		return err
	}
	if res.Kind == conversion.ResultMedia {
		return c.JSON(res.Media)
	}
	return sendArtifact(c, res)
}

// ConvertText runs a text-consuming tool.
// POST /api/convert/text
func (h *ConvertHandlers) ConvertText(c *fiber.Ctx) error {
	var req conversion.ConvertTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	action, err := conversion.ParseAction(req.Action)
	if err != nil {
		return err
	}

	res, err := h.service.ConvertText(c.Context(), action, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(conversion.ConvertTextResponse{Result: res.Text})
}

// ============================================================================
// Download Proxy
// ============================================================================

// Download streams a remote resource back with an attachment disposition, so
// browsers save CDN-hosted media instead of navigating to it.
// GET /api/download?url=...&filename=...
func (h *ConvertHandlers) Download(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url query parameter is required",
		})
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url must be an absolute http(s) URL",
		})
	}

	filename := c.Query("filename")
	if filename == "" {
		filename = "download"
	}

	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid url",
		})
	}

	resp, err := h.download.Do(req)
	if err != nil {
		logx.Warnf("download proxy failed for %s: %v", rawURL, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch remote resource",
		})
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "remote resource unavailable",
			"status": resp.StatusCode,
		})
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	// Stream the body through without buffering; media files can be large.
	// fasthttp closes the stream once the response is written, so no defer
	// here. A negative ContentLength streams chunked.
	return c.SendStream(resp.Body, int(resp.ContentLength))
}

// ============================================================================
// Catalog
// ============================================================================

// ListTools returns the public tool catalog.
// GET /api/tools
func (h *ConvertHandlers) ListTools(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tools": catalog.All(),
	})
}

// ============================================================================
// Helpers
// ============================================================================

func sendArtifact(c *fiber.Ctx, res *conversion.Result) error {
	c.Set(fiber.HeaderContentType, res.MIME)
	if res.Filename != "" {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	}
	return c.Send(res.Data)
}
