package socket

import (
	"encoding/json"
	"net/http"
	"time"

	"coscribe/pkg/logger"

	"github.com/gorilla/websocket"
)

const pingPeriod = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The front end is served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Session binds one live channel to an identity and a document.
// A reconnect is a brand-new Session; nothing is resumed.
type Session struct {
	Hub    *Hub
	Conn   *websocket.Conn
	DocID  string
	UserID string
	Send   chan []byte
}

// ServeWs authorizes and upgrades a live-channel request. The caller has
// already resolved the credential to userID; access to the document is
// checked before the upgrade so a denied client never reaches Open state.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, docID, userID string) {
	if docID == "" {
		http.Error(w, "Missing document ID", http.StatusBadRequest)
		return
	}

	hasAccess, err := hub.gate.CheckAccess(docID, userID)
	if err != nil {
		logger.Sugar.Errorf("Database error checking access for doc %s: %v", docID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if !hasAccess {
		logger.Sugar.Warnf("Connection rejected: user %s has no access to doc %s", userID, docID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	session := &Session{
		Hub:    hub,
		Conn:   conn,
		DocID:  docID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	session.Hub.Register <- session

	go session.writePump()
	go session.readPump()
}

func (c *Session) readPump() {
	defer func() {
		// Closing the channel is the sole authority for destroying the
		// session, whatever the reason for the close was.
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, rawMessage, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}

		// A malformed payload is dropped at the boundary; it must not kill
		// the channel or reach the store.
		var msg Message
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			logger.Sugar.Errorf("Error unmarshalling message: %v", err)
			continue
		}

		if msg.Type != UpdateType {
			logger.Sugar.Debugf("Ignoring message of unknown type %q from user %s", msg.Type, c.UserID)
			continue
		}

		// A channel is bound to a single document for its lifetime.
		if msg.DocumentID != c.DocID {
			logger.Sugar.Warnf("Ignoring update for doc %q on a channel bound to %s", msg.DocumentID, c.DocID)
			continue
		}

		if msg.Content == nil && msg.Title == nil {
			continue // nothing to fold
		}

		c.Hub.Broadcast <- Envelope{Message: msg, Sender: c}
	}
}

func (c *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				// The hub dropped this session.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Connection is dead
			}
		}
	}
}
