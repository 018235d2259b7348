package pagegist

import "context"

// MessageType identifies a request sent to a tab's content script.
type MessageType string

// MessageExtractPage asks the content script for the page's readable blocks.
const MessageExtractPage MessageType = "EXTRACT_PAGE"

// Message is a request sent to a content script.
type Message struct {
	Type MessageType `json:"type"`
}

// ExtractResponse is the content script's reply to MessageExtractPage.
type ExtractResponse struct {
	Extracted []Block `json:"extracted"`
}

// MessageHandler answers messages inside a page context.
type MessageHandler interface {
	// HandleMessage returns the response for msg. Unrecognized message
	// types produce a nil response and a nil error.
	HandleMessage(ctx context.Context, msg Message) (*ExtractResponse, error)
}
