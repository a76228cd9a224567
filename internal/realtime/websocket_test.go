package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestWebsocketSourceDeliversEvents(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"resource":"history","id":"case_3"}`)))
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	src := NewWebsocketSource(wsURL(ts), "tok-123", nil).WithBackoff(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	select {
	case ev := <-src.Events():
		assert.Equal(t, ResourceHistory, ev.Resource)
		assert.Equal(t, "case_3", ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	assert.Equal(t, "Bearer tok-123", gotAuth)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWebsocketSourceReconnects(t *testing.T) {
	conns := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conns++
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		if conns == 1 {
			// Drop the first connection without sending anything.
			conn.Close()
			return
		}
		defer conn.Close()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"resource":"chat"}`)))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	src := NewWebsocketSource(wsURL(ts), "", nil).WithBackoff(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = src.Run(ctx) }()

	select {
	case ev := <-src.Events():
		assert.Equal(t, ResourceChat, ev.Resource)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event after reconnect")
	}
	assert.GreaterOrEqual(t, conns, 2)
}

func TestWebsocketSourceSkipsMalformedFrames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"resource":"dashboard"}`)))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	src := NewWebsocketSource(wsURL(ts), "", nil).WithBackoff(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = src.Run(ctx) }()

	select {
	case ev := <-src.Events():
		assert.Equal(t, ResourceDashboard, ev.Resource)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
