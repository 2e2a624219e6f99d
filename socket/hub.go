package socket

import (
	"encoding/json"

	"coscribe/internal/document/model"
	"coscribe/pkg/logger"
)

// DocumentStore is the slice of the document repository the hub needs:
// folding an accepted edit into the durable record. A nil content or title
// leaves that field unchanged.
type DocumentStore interface {
	ApplyUpdate(docID string, content, title *string) (*model.Document, error)
}

// AccessGate answers whether an identity may open a channel for a document.
type AccessGate interface {
	CheckAccess(docID, userID string) (bool, error)
}

// Envelope pairs an inbound edit with the session it arrived on so the
// fan-out can exclude the sender.
type Envelope struct {
	Message Message
	Sender  *Session
}

// Hub owns edit propagation: it registers channels with the Registry,
// folds each accepted edit into the store, and fans the resulting snapshot
// out to every other session on the same document. A single goroutine
// (Run) drains the three channels, so registry mutations and store writes
// for a document happen in arrival order.
type Hub struct {
	Registry   *Registry
	Broadcast  chan Envelope
	Register   chan *Session
	Unregister chan *Session

	store DocumentStore
	gate  AccessGate
}

func NewHub(store DocumentStore, gate AccessGate) *Hub {
	return &Hub{
		Registry:   NewRegistry(),
		Broadcast:  make(chan Envelope),
		Register:   make(chan *Session),
		Unregister: make(chan *Session),
		store:      store,
		gate:       gate,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case session := <-h.Register:
			// The channel carries subsequent edits only; the client fetched
			// the current snapshot over the REST API before connecting, so
			// nothing is pushed to a session on open.
			h.Registry.Register(session.DocID, session)
			logger.Sugar.Infof("Session opened: user %s on doc %s", session.UserID, session.DocID)

		case session := <-h.Unregister:
			h.drop(session)

		case env := <-h.Broadcast:
			h.handleUpdate(env)
		}
	}
}

// drop removes a session from the registry and closes its send channel.
// Safe to call more than once per session.
func (h *Hub) drop(session *Session) {
	if h.Registry.Unregister(session.DocID, session) {
		close(session.Send)
		logger.Sugar.Infof("Session closed: user %s on doc %s", session.UserID, session.DocID)
	}
}

func (h *Hub) handleUpdate(env Envelope) {
	msg := env.Message

	// Fold the edit into the store first; a failed write is not broadcast.
	// Last write wins: whatever lands here last overwrites the fields.
	if _, err := h.store.ApplyUpdate(msg.DocumentID, msg.Content, msg.Title); err != nil {
		logger.Sugar.Errorf("Failed to apply update to doc %s: %v", msg.DocumentID, err)
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
		return
	}

	// The sender's own session is excluded; another tab of the same user
	// is a separate session and does receive the edit.
	for _, target := range h.Registry.Targets(msg.DocumentID, env.Sender) {
		select {
		case target.Send <- payload:
		default:
			// Send buffer full: the recipient is lagging or dead. Drop it
			// rather than stall delivery to everyone else.
			logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", target.UserID)
			h.drop(target)
			target.Conn.Close()
		}
	}
}

// RemoveDocument disconnects every live session for a deleted document.
// Each close unwinds through the session's readPump, which unregisters it.
func (h *Hub) RemoveDocument(docID string) {
	for _, session := range h.Registry.Sessions(docID) {
		session.Conn.Close()
	}
}
