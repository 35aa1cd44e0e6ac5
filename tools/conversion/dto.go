package conversion

// ConvertURLRequest is the body of POST /api/convert/url.
type ConvertURLRequest struct {
	Action string `json:"action"`
	URL    string `json:"url"`
}

// ConvertTextRequest is the body of POST /api/convert/text.
type ConvertTextRequest struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

// ConvertTextResponse wraps the transformed text.
type ConvertTextResponse struct {
	Result string `json:"result"`
}
