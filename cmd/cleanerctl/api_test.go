package main

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/cleanerctl/command"
	"github.com/mastercactapus/cleanerctl/device"
)

func newTestAPI(t *testing.T) (*httptest.Server, net.Conn) {
	client, server := net.Pipe()
	conn := device.NewConn(client)
	t.Cleanup(func() { conn.Close() })

	a := newAPI(conn, map[string][]command.Block{
		"release": command.MustParse("C0\n"),
	})
	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)

	return srv, server
}

func readFrame(t *testing.T, r io.Reader, n int) []byte {
	frame := make([]byte, n)
	_, err := io.ReadFull(r, frame)
	require.NoError(t, err)
	return frame
}

func TestAPI_Command(t *testing.T) {
	srv, link := newTestAPI(t)

	done := make(chan []byte, 1)
	go func() { done <- readFrame(t, link, 46) }()

	resp, err := http.Post(srv.URL+"/api/command", "text/plain", strings.NewReader("G0 R90\n"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	frame := <-done
	assert.Equal(t, []byte{0xA5, 0x01}, frame[:2])
	assert.Equal(t, []byte("G0 R90"), frame[6:12])
}

func TestAPI_CommandInvalid(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp, err := http.Post(srv.URL+"/api/command", "text/plain", strings.NewReader("not a command\n"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestAPI_Macro(t *testing.T) {
	srv, link := newTestAPI(t)

	done := make(chan []byte, 1)
	go func() { done <- readFrame(t, link, 46) }()

	resp, err := http.Post(srv.URL+"/api/macro/release", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	frame := <-done
	assert.Equal(t, []byte("C0"), frame[6:8])
}

func TestAPI_MacroUnknown(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp, err := http.Post(srv.URL+"/api/macro/nope", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestAPI_Shutdown(t *testing.T) {
	srv, link := newTestAPI(t)

	done := make(chan []byte, 1)
	go func() { done <- readFrame(t, link, 10) }()

	resp, err := http.Post(srv.URL+"/api/shutdown", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, []byte{0xA5, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, <-done)
}
