package model

import "time"

// Document is the durable record behind every live editing channel.
// Content is an opaque string to the backend; the observed client stores
// serialized rich text in it.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	OwnerID      string    `json:"-"`
	LastModified time.Time `json:"lastModified"`
}

// DocumentSummary is the dashboard listing shape: no content blob,
// plus the caller-relative ownership flag.
type DocumentSummary struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	LastModified       time.Time `json:"lastModified"`
	OwnedByCurrentUser bool      `json:"owned_by_current_user"`
}

type CreateDocRequest struct {
	Title string `json:"title"`
}

// UpdateDocRequest carries only the fields the caller wants changed;
// nil means "leave as is".
type UpdateDocRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ShareRequest struct {
	DocID string `json:"document_id"`
	Email string `json:"email"`
}

type StatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
