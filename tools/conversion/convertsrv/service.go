// Package convertsrv implements the conversion dispatcher: it validates a
// request, routes it to the right engine, and returns a single artifact or a
// typed failure. The service holds no state between invocations.
package convertsrv

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/toolomni/engine/internal/archive"
	"github.com/toolomni/engine/internal/imaging"
	"github.com/toolomni/engine/internal/pdf"
	"github.com/toolomni/engine/internal/qrgen"
	"github.com/toolomni/engine/internal/textkit"
	"github.com/toolomni/engine/pkg/logx"
	"github.com/toolomni/engine/tools/conversion"
)

const (
	// Rendering scale and page JPEG quality for pdf-to-jpg archives.
	archiveScale   = 1.5
	archiveQuality = 0.85

	// Compression tier parameters: scale trades resolution, quality trades
	// JPEG fidelity. High sacrifices more of both.
	mediumScale   = 1.5
	mediumQuality = 0.75
	highScale     = 1.0
	highQuality   = 0.5
)

const (
	mimePDF  = "application/pdf"
	mimeZIP  = "application/zip"
	mimePNG  = "image/png"
	mimeJPEG = "image/jpeg"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Service routes conversion requests to the engines.
type Service struct {
	codec    *pdf.Codec
	raster   *pdf.Rasterizer
	resolver conversion.VideoResolver
	cache    conversion.MetadataCache // optional
	writer   conversion.Writer        // optional
}

// NewService creates the dispatcher. cache and writer may be nil; the
// corresponding features degrade gracefully.
func NewService(
	codec *pdf.Codec,
	raster *pdf.Rasterizer,
	resolver conversion.VideoResolver,
	cache conversion.MetadataCache,
	writer conversion.Writer,
) *Service {
	return &Service{
		codec:    codec,
		raster:   raster,
		resolver: resolver,
		cache:    cache,
		writer:   writer,
	}
}

// ============================================================================
// File actions
// ============================================================================

// ConvertFiles runs a file-consuming action over the uploaded files and
// returns the artifact.
func (s *Service) ConvertFiles(ctx context.Context, action conversion.Action, files []conversion.InputFile, opts conversion.Options) (*conversion.Result, error) {
	inv := uuid.NewString()
	logx.Infof("convert %s: action=%s files=%d", inv, action, len(files))

	if action.Kind() != conversion.KindFiles {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "action does not accept file input")
	}
	if len(files) == 0 {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "no files provided")
	}

	var (
		res *conversion.Result
		err error
	)
	switch action {
	case conversion.ActionMergePDF:
		res, err = s.mergePDF(files)
	case conversion.ActionPDFToJPG:
		res, err = s.pdfToJPG(files[0])
	case conversion.ActionCompressPDF:
		res, err = s.compressPDF(files[0], opts.CompressionLevel)
	case conversion.ActionBackgroundRemover:
		res, err = s.imagePipeline(files[0], imaging.RemoveBackground, mimePNG, "no-background.png")
	case conversion.ActionCompressImage:
		res, err = s.imagePipeline(files[0], imaging.Compress, mimeJPEG, "compressed.jpg")
	case conversion.ActionJPGToPNG:
		res, err = s.imagePipeline(files[0], func(data []byte) ([]byte, error) {
			return imaging.ConvertTo(data, imaging.FormatPNG)
		}, mimePNG, "converted.png")
	case conversion.ActionPNGToJPG:
		res, err = s.imagePipeline(files[0], func(data []byte) ([]byte, error) {
			return imaging.ConvertTo(data, imaging.FormatJPEG)
		}, mimeJPEG, "converted.jpg")
	case conversion.ActionUpscaleImage:
		res, err = s.imagePipeline(files[0], imaging.Upscale2x, mimeJPEG, "upscaled.jpg")
	case conversion.ActionPDFToWord:
		res, err = s.passthrough(files[0], action, mimeDocx, "converted.docx")
	case conversion.ActionWordToPDF:
		res, err = s.passthrough(files[0], action, mimePDF, "converted.pdf")
	default:
		return nil, conversion.ErrUnsupportedAction().WithDetail("action", action)
	}

	if err != nil {
		logx.Errorf("convert %s: action=%s failed: %v", inv, action, err)
		return nil, err
	}
	logx.Infof("convert %s: action=%s done, %d bytes", inv, action, len(res.Data))
	return res, nil
}

func (s *Service) mergePDF(files []conversion.InputFile) (*conversion.Result, error) {
	if len(files) < 2 {
		return nil, conversion.ErrValidationFailed().
			WithDetail("reason", "merge requires at least 2 files").
			WithDetail("got", len(files))
	}

	inputs := make([][]byte, len(files))
	for i, f := range files {
		inputs[i] = f.Data
	}

	merged, err := s.codec.Merge(inputs)
	if err != nil {
		return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeDecodeFailed, err)
	}
	return conversion.BytesResult(merged, mimePDF, "merged.pdf"), nil
}

func (s *Service) pdfToJPG(file conversion.InputFile) (*conversion.Result, error) {
	pages, err := s.renderPages(file, archiveScale)
	if err != nil {
		return nil, err
	}

	packer := archive.NewPacker()
	for i, page := range pages {
		jpg, err := imaging.Encode(page, imaging.FormatJPEG, archiveQuality)
		if err != nil {
			return nil, s.internalError(conversion.ActionPDFToJPG, fmt.Sprintf("encode page %d", i+1), err)
		}
		if err := packer.AddEntry(fmt.Sprintf("page-%d.jpg", i+1), jpg); err != nil {
			if errors.Is(err, archive.ErrDuplicateEntry) {
				return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeDuplicateEntry, err)
			}
			return nil, s.internalError(conversion.ActionPDFToJPG, "pack archive", err)
		}
	}

	blob, err := packer.Finalize()
	if err != nil {
		return nil, s.internalError(conversion.ActionPDFToJPG, "finalize archive", err)
	}
	return conversion.BytesResult(blob, mimeZIP, "pages.zip"), nil
}

func (s *Service) compressPDF(file conversion.InputFile, level conversion.CompressionLevel) (*conversion.Result, error) {
	if level == "" {
		level = conversion.LevelMedium
	}

	if level == conversion.LevelLow {
		out, err := s.codec.Repack(file.Data)
		if err != nil {
			return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeDecodeFailed, err)
		}
		return conversion.BytesResult(out, mimePDF, "compressed.pdf"), nil
	}

	scale, quality := mediumScale, mediumQuality
	if level == conversion.LevelHigh {
		scale, quality = highScale, highQuality
	}

	pages, err := s.renderPages(file, scale)
	if err != nil {
		return nil, err
	}

	jpegs := make([][]byte, len(pages))
	for i, page := range pages {
		jpg, err := imaging.Encode(page, imaging.FormatJPEG, quality)
		if err != nil {
			return nil, s.internalError(conversion.ActionCompressPDF, fmt.Sprintf("encode page %d", i+1), err)
		}
		jpegs[i] = jpg
	}

	out, err := s.codec.FromImages(jpegs)
	if err != nil {
		return nil, s.internalError(conversion.ActionCompressPDF, "rebuild document", err)
	}
	return conversion.BytesResult(out, mimePDF, "compressed.pdf"), nil
}

func (s *Service) renderPages(file conversion.InputFile, scale float64) ([]image.Image, error) {
	images, err := s.raster.RenderPages(file.Data, scale)
	if err != nil {
		if errors.Is(err, pdf.ErrTooManyPages) {
			return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeValidationFailed, err).
				WithDetail("file", file.Name)
		}
		return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeDecodeFailed, err).
			WithDetail("file", file.Name)
	}
	return images, nil
}

func (s *Service) imagePipeline(file conversion.InputFile, transform func([]byte) ([]byte, error), mime, filename string) (*conversion.Result, error) {
	out, err := transform(file.Data)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return nil, conversion.ErrRegistry.NewWithCause(conversion.CodeUnsupportedFormat, err).
				WithDetail("file", file.Name)
		}
		return nil, s.internalError("image", "transform", err)
	}
	return conversion.BytesResult(out, mime, filename), nil
}

// passthrough returns the input unchanged with the target MIME type. The
// PDF/Word pair is a documented stub: a real transcoder is needed for actual
// fidelity, and callers are warned in the logs.
func (s *Service) passthrough(file conversion.InputFile, action conversion.Action, mime, filename string) (*conversion.Result, error) {
	logx.Warnf("action %s is a passthrough stub; returning input bytes unchanged", action)
	return conversion.BytesResult(file.Data, mime, filename), nil
}

// ============================================================================
// URL actions
// ============================================================================

// ConvertURL handles URL-consuming actions.
func (s *Service) ConvertURL(ctx context.Context, action conversion.Action, url string) (*conversion.Result, error) {
	if action.Kind() != conversion.KindURL {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "action does not accept URL input")
	}
	if url == "" {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "url is required")
	}

	switch action {
	case conversion.ActionTikTokDownloader:
		meta, err := s.resolveVideo(ctx, url)
		if err != nil {
			return nil, err
		}
		return conversion.MediaResult(meta), nil

	case conversion.ActionQRGenerator:
		png, err := qrgen.Generate(url, qrgen.DefaultOptions())
		if err != nil {
			return nil, s.internalError(action, "generate qr", err)
		}
		return conversion.BytesResult(png, mimePNG, "qr-code.png"), nil
	}

	return nil, conversion.ErrUnsupportedAction().WithDetail("action", action)
}

func (s *Service) resolveVideo(ctx context.Context, url string) (*conversion.VideoMetadata, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, url)
		if err != nil {
			logx.Warnf("metadata cache read failed: %v", err)
		} else if cached != nil {
			logx.Debugf("metadata cache hit for %s", url)
			return cached, nil
		}
	}

	meta, err := s.resolver.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, url, meta); err != nil {
			logx.Warnf("metadata cache write failed: %v", err)
		}
	}
	return meta, nil
}

// ============================================================================
// Text actions
// ============================================================================

// ConvertText handles text-consuming actions.
func (s *Service) ConvertText(ctx context.Context, action conversion.Action, text string) (*conversion.Result, error) {
	if action.Kind() != conversion.KindText {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "action does not accept text input")
	}
	if text == "" {
		return nil, conversion.ErrValidationFailed().
			WithDetail("action", action).
			WithDetail("reason", "text is required")
	}

	switch action {
	case conversion.ActionAIWriter:
		if s.writer != nil {
			draft, err := s.writer.Draft(ctx, text)
			if err == nil {
				return conversion.TextResult(draft), nil
			}
			logx.Warnf("hosted writer failed, falling back to template: %v", err)
		}
		return conversion.TextResult(textkit.Draft(text)), nil

	case conversion.ActionGrammarChecker:
		return conversion.TextResult(textkit.FixGrammar(text)), nil
	}

	return nil, conversion.ErrUnsupportedAction().WithDetail("action", action)
}

// internalError logs enough context to diagnose and returns the generic
// processing failure; end users never see the underlying message.
func (s *Service) internalError(action conversion.Action, stage string, err error) error {
	logx.Errorf("processing failed: action=%s stage=%s err=%v", action, stage, err)
	return conversion.ErrRegistry.NewWithCause(conversion.CodeProcessingFailed, err).
		WithDetail("stage", stage)
}
