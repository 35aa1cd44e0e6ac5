// Package conversion defines the domain model of the file-tool engine: the
// closed set of tool actions, the inputs a caller hands over for one dispatch
// call, and the single artifact a successful call produces.
package conversion

// Action identifies one supported tool. The set is closed; anything else is
// rejected before any processing happens.
type Action string

const (
	ActionMergePDF          Action = "merge-pdf"
	ActionPDFToJPG          Action = "pdf-to-jpg"
	ActionCompressPDF       Action = "compress-pdf"
	ActionBackgroundRemover Action = "background-remover"
	ActionPDFToWord         Action = "pdf-to-word"
	ActionWordToPDF         Action = "word-to-pdf"
	ActionCompressImage     Action = "compress-image"
	ActionJPGToPNG          Action = "jpg-to-png"
	ActionPNGToJPG          Action = "png-to-jpg"
	ActionUpscaleImage      Action = "upscale-image"
	ActionTikTokDownloader  Action = "tiktok-downloader"
	ActionQRGenerator       Action = "qr-generator"
	ActionAIWriter          Action = "ai-writer"
	ActionGrammarChecker    Action = "grammar-checker"
)

// InputKind describes what kind of input an action consumes.
type InputKind int

const (
	KindFiles InputKind = iota
	KindURL
	KindText
)

// ParseAction validates a raw action identifier against the closed set.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionMergePDF, ActionPDFToJPG, ActionCompressPDF,
		ActionBackgroundRemover, ActionPDFToWord, ActionWordToPDF,
		ActionCompressImage, ActionJPGToPNG, ActionPNGToJPG,
		ActionUpscaleImage, ActionTikTokDownloader, ActionQRGenerator,
		ActionAIWriter, ActionGrammarChecker:
		return a, nil
	}
	return "", ErrUnsupportedAction().WithDetail("action", s)
}

// Kind reports the input family the action belongs to.
func (a Action) Kind() InputKind {
	switch a {
	case ActionTikTokDownloader, ActionQRGenerator:
		return KindURL
	case ActionAIWriter, ActionGrammarChecker:
		return KindText
	default:
		return KindFiles
	}
}

// CompressionLevel selects how aggressively compress-pdf trades quality for
// size.
type CompressionLevel string

const (
	LevelLow    CompressionLevel = "low"
	LevelMedium CompressionLevel = "medium"
	LevelHigh   CompressionLevel = "high"
)

// ParseCompressionLevel parses a level, defaulting to medium for empty or
// unknown values (the catalog UI only ever sends the three known strings).
func ParseCompressionLevel(s string) CompressionLevel {
	switch CompressionLevel(s) {
	case LevelLow, LevelMedium, LevelHigh:
		return CompressionLevel(s)
	}
	return LevelMedium
}

// InputFile is one caller-owned upload. The engine borrows it for the duration
// of a single dispatch call and never retains it.
type InputFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Options carries optional per-action settings.
type Options struct {
	CompressionLevel CompressionLevel
}

// Author is the creator of a resolved remote video.
type Author struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// VideoMetadata is the structured result of resolving a remote video URL.
// Play/HDPlay/Music are reference URLs served by the upstream CDN; the engine
// never holds those bytes (delivery goes through the download proxy).
type VideoMetadata struct {
	Title  string `json:"title"`
	Cover  string `json:"cover"`
	Author Author `json:"author"`
	Play   string `json:"play"`
	HDPlay string `json:"hdplay"`
	Music  string `json:"music"`
}

// ResultKind discriminates the populated variant of a Result.
type ResultKind int

const (
	ResultBytes ResultKind = iota
	ResultText
	ResultMedia
)

// Result is the artifact of one successful conversion. Exactly one variant is
// populated.
type Result struct {
	Kind     ResultKind
	Data     []byte
	MIME     string
	Filename string
	Text     string
	Media    *VideoMetadata
}

// BytesResult builds a binary artifact result.
func BytesResult(data []byte, mime, filename string) *Result {
	return &Result{Kind: ResultBytes, Data: data, MIME: mime, Filename: filename}
}

// TextResult builds a plain-text result.
func TextResult(text string) *Result {
	return &Result{Kind: ResultText, Text: text}
}

// MediaResult builds a remote-media metadata result.
func MediaResult(meta *VideoMetadata) *Result {
	return &Result{Kind: ResultMedia, Media: meta}
}
