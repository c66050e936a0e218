package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sseKeepAlive is how often an idle event stream sends a comment line so
// proxies keep the connection open.
const sseKeepAlive = 25 * time.Second

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewSSEWriter creates a new SSE writer. The server write timeout is lifted
// for the stream.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && err != http.ErrNotSupported {
		return nil, fmt.Errorf("failed to clear write deadline: %w", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("streaming not supported: %w", err)
	}
	return &SSEWriter{w: w, rc: rc}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	return s.rc.Flush()
}

// WriteKeepAlive sends a comment line, which clients ignore.
func (s *SSEWriter) WriteKeepAlive() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	return s.rc.Flush()
}

// WriteClosed tells the client the session is gone and the stream ends.
func (s *SSEWriter) WriteClosed(sessionID, reason string) {
	s.WriteEvent("closed", map[string]string{ //nolint:errcheck
		"session_id": sessionID,
		"reason":     reason,
	})
}

// handleSessionEvents streams the session state: once on connect and again
// after every edit, undo, settings change and save outcome. The stream ends
// when the session closes, the server shuts down or the client goes away.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	changes, stop := sess.Watch()
	defer stop()

	stream, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := stream.WriteEvent("state", sess.State()); err != nil {
		return
	}

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			stream.WriteClosed(sess.ID, "server shutting down")
			return
		case <-sess.Done():
			stream.WriteClosed(sess.ID, "session closed")
			return
		case <-changes:
			err = stream.WriteEvent("state", sess.State())
		case <-keepAlive.C:
			err = stream.WriteKeepAlive()
		}
		if err != nil {
			return
		}
	}
}
