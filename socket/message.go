package socket

// UpdateType is the only message type on the wire. Each update carries the
// full resulting field value(s), not a diff; absent fields are left
// unchanged on the receiving side.
const UpdateType = "update"

// Message is the envelope in both directions:
//
//	{ "type": "update", "documentId": "<id>", "content"?: "...", "title"?: "..." }
type Message struct {
	Type       string  `json:"type"`
	DocumentID string  `json:"documentId"`
	Content    *string `json:"content,omitempty"`
	Title      *string `json:"title,omitempty"`
}
