package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge(t *testing.T, frames chan []byte, replies chan string) *httptest.Server {
	var upgrader websocket.Upgrader
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			t.Error("upgrade:", err)
			return
		}
		defer ws.Close()
		go func() {
			for reply := range replies {
				ws.WriteMessage(websocket.TextMessage, []byte(reply))
			}
		}()
		for {
			mt, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.BinaryMessage {
				frames <- data
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient_Write(t *testing.T) {
	frames := make(chan []byte, 1)
	replies := make(chan string)
	defer close(replies)
	srv := newTestBridge(t, frames, replies)
	defer srv.Close()

	c := NewClient(wsURL(srv))
	defer c.Close()

	frame := []byte{0xA5, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	n, err := c.Write(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)

	select {
	case got := <-frames:
		assert.Equal(t, frame, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

func TestClient_Read(t *testing.T) {
	frames := make(chan []byte, 1)
	replies := make(chan string, 1)
	defer close(replies)
	srv := newTestBridge(t, frames, replies)
	defer srv.Close()

	c := NewClient(wsURL(srv))
	defer c.Close()

	// a write forces the connection up before the reply is queued
	_, err := c.Write([]byte{0xA5})
	require.NoError(t, err)

	replies <- "motor init ok"

	buf := make([]byte, 64)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "motor init ok\r", string(buf[:n]))
}

func TestClient_Closed(t *testing.T) {
	frames := make(chan []byte, 1)
	replies := make(chan string)
	close(replies)
	srv := newTestBridge(t, frames, replies)
	defer srv.Close()

	c := NewClient(wsURL(srv))
	assert.NoError(t, c.Close())

	_, err := c.Write([]byte{0xA5})
	assert.Equal(t, ErrClosed, err)
}
