// Package catalog describes the tools the engine exposes. The frontend renders
// its tool grid from this list, so IDs here must match the dispatcher's action
// identifiers.
package catalog

// Category groups tools in the UI.
type Category string

const (
	CategoryPDF   Category = "pdf"
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryText  Category = "text"
	CategoryUtil  Category = "utility"
)

// Tool is one entry in the public tool catalog.
type Tool struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Href        string   `json:"href"`
}

var tools = []Tool{
	{
		ID:          "merge-pdf",
		Title:       "Merge PDF",
		Description: "Combine multiple PDF files into a single document",
		Category:    CategoryPDF,
		Href:        "/tools/merge-pdf",
	},
	{
		ID:          "pdf-to-jpg",
		Title:       "PDF to JPG",
		Description: "Convert each PDF page into a high-quality JPG image",
		Category:    CategoryPDF,
		Href:        "/tools/pdf-to-jpg",
	},
	{
		ID:          "compress-pdf",
		Title:       "Compress PDF",
		Description: "Reduce PDF file size while keeping it readable",
		Category:    CategoryPDF,
		Href:        "/tools/compress-pdf",
	},
	{
		ID:          "pdf-to-word",
		Title:       "PDF to Word",
		Description: "Turn PDF documents into editable Word files",
		Category:    CategoryPDF,
		Href:        "/tools/pdf-to-word",
	},
	{
		ID:          "word-to-pdf",
		Title:       "Word to PDF",
		Description: "Convert Word documents into shareable PDFs",
		Category:    CategoryPDF,
		Href:        "/tools/word-to-pdf",
	},
	{
		ID:          "background-remover",
		Title:       "Background Remover",
		Description: "Remove the background from an image automatically",
		Category:    CategoryImage,
		Href:        "/tools/background-remover",
	},
	{
		ID:          "compress-image",
		Title:       "Compress Image",
		Description: "Shrink image file size without visible quality loss",
		Category:    CategoryImage,
		Href:        "/tools/compress-image",
	},
	{
		ID:          "jpg-to-png",
		Title:       "JPG to PNG",
		Description: "Convert JPG images to lossless PNG",
		Category:    CategoryImage,
		Href:        "/tools/jpg-to-png",
	},
	{
		ID:          "png-to-jpg",
		Title:       "PNG to JPG",
		Description: "Convert PNG images to compact JPG",
		Category:    CategoryImage,
		Href:        "/tools/png-to-jpg",
	},
	{
		ID:          "upscale-image",
		Title:       "Upscale Image",
		Description: "Double image resolution with edge-preserving sharpening",
		Category:    CategoryImage,
		Href:        "/tools/upscale-image",
	},
	{
		ID:          "tiktok-downloader",
		Title:       "TikTok Downloader",
		Description: "Download TikTok videos without a watermark",
		Category:    CategoryVideo,
		Href:        "/tools/tiktok-downloader",
	},
	{
		ID:          "qr-generator",
		Title:       "QR Code Generator",
		Description: "Generate a high-resolution QR code for any link",
		Category:    CategoryUtil,
		Href:        "/tools/qr-generator",
	},
	{
		ID:          "ai-writer",
		Title:       "AI Writer",
		Description: "Draft structured copy for any topic in seconds",
		Category:    CategoryText,
		Href:        "/tools/ai-writer",
	},
	{
		ID:          "grammar-checker",
		Title:       "Grammar Checker",
		Description: "Polish your text for better grammar and flow",
		Category:    CategoryText,
		Href:        "/tools/grammar-checker",
	},
}

// All returns the full catalog in display order.
func All() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// ByID looks up a tool by its action identifier.
func ByID(id string) (Tool, bool) {
	for _, t := range tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}
