package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/mutation"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name string
	data string
}

// readEvents parses the stream into events until it ends.
func readEvents(body *bufio.Reader, out chan<- sseEvent) {
	defer close(out)
	var ev sseEvent
	for {
		line, err := body.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				out <- ev
			}
			ev = sseEvent{}
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func nextEvent(t *testing.T, events <-chan sseEvent) sseEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream ended early")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event within 2s")
		return sseEvent{}
	}
}

func TestSessionEvents_StreamsStateUntilClosed(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("stream@example.com")
	st := ts.openSession(token, map[string]any{"kind": "resume"})

	httpSrv := httptest.NewServer(ts.srv.Handler())
	defer httpSrv.Close()

	req, err := http.NewRequest(http.MethodGet, httpSrv.URL+"/v1/sessions/"+st.ID+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan sseEvent, 8)
	go readEvents(bufio.NewReader(resp.Body), events)

	first := nextEvent(t, events)
	assert.Equal(t, "state", first.name)

	ts.ops(token, st.ID, `{"op":"updateSummary","text":"streamed"}`)
	ev := nextEvent(t, events)
	require.Equal(t, "state", ev.name)
	var state SessionState
	require.NoError(t, json.Unmarshal([]byte(ev.data), &state))
	assert.Equal(t, "streamed", state.Document.SummaryText())
	assert.True(t, state.CanUndo)

	w := ts.do(http.MethodDelete, "/v1/sessions/"+st.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// Closing saves first, so a state event may precede the close.
	for {
		ev = nextEvent(t, events)
		if ev.name != "state" {
			break
		}
	}
	assert.Equal(t, "closed", ev.name)
	assert.Contains(t, ev.data, st.ID)
}

func TestSessionEvents_OtherUsersSessionIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.register("owner@example.com")
	st := ts.openSession(owner, map[string]any{"kind": "resume"})

	other := ts.register("intruder@example.com")
	w := ts.do(http.MethodGet, "/v1/sessions/"+st.ID+"/events", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_WatchCoalesces(t *testing.T) {
	r, _ := newTestRegistry(t, RegistryConfig{AutosaveDelay: time.Hour})
	sess, err := r.Open(context.Background(), uuid.New(), types.KindResume, "")
	require.NoError(t, err)

	changes, stop := sess.Watch()
	for _, text := range []string{"a", "b", "c"} {
		sess.Apply([]mutation.Command{command("updateSummary", text)})
	}
	<-changes
	select {
	case <-changes:
		t.Fatal("expected a single pending signal")
	default:
	}

	stop()
	sess.Apply([]mutation.Command{command("updateSummary", "d")})
	select {
	case <-changes:
		t.Fatal("stopped watcher still signalled")
	default:
	}
}
