// Package bridge connects to a remote serial bridge: a small daemon
// sitting next to the cleaner that exposes its serial port over a
// websocket. Frames are forwarded as binary messages; text messages
// coming back are the device's raw CR-terminated output.
package bridge

import (
	"errors"
	"io"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// ErrClosed is returned from Read and Write after Close.
var ErrClosed = errors.New("bridge: closed")

// A Client maintains the websocket connection, reconnecting as needed.
//
// It implements io.ReadWriteCloser so it can stand in for a local
// serial port: Write forwards one complete frame per call, Read returns
// the device output relayed by the bridge.
type Client struct {
	url string

	outgoing chan message
	incoming chan []byte
	closeCh  chan struct{}

	readBuf []byte
}

type message struct {
	done    chan error
	payload []byte
}

// NewClient starts a Client for the given websocket URL.
func NewClient(url string) *Client {
	c := &Client{
		url:      url,
		outgoing: make(chan message),
		incoming: make(chan []byte, 100),
		closeCh:  make(chan struct{}),
	}

	go c.loop()

	return c
}

func (c *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			select {
			case <-c.closeCh:
			default:
				log.Println("ERROR: read:", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		select {
		case c.incoming <- data:
		case <-c.closeCh:
			return
		}
	}
}

func (c *Client) loop() {
reconnect:
	for {
		select {
		case <-c.closeCh:
			return
		default:
		}

		log.Println("Connecting to", c.url)
		ws, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			log.Println("ERROR: connect:", err)
			select {
			case <-c.closeCh:
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go c.readLoop(ws, ch)

		for {
			select {
			case <-c.closeCh:
				ws.Close()
				return
			case <-ch:
				continue reconnect
			case msg := <-c.outgoing:
				err = ws.WriteMessage(websocket.BinaryMessage, msg.payload)
				msg.done <- err
				if err != nil {
					log.Println("ERROR: send:", err)
					ws.Close()
					continue reconnect
				}
			}
		}
	}
}

// Write forwards one complete frame to the bridge as a single binary
// message. It blocks until the bridge connection has accepted it; a
// frame that could not be written is reported as an error, never
// retried on the next connection.
func (c *Client) Write(p []byte) (int, error) {
	select {
	case <-c.closeCh:
		return 0, ErrClosed
	default:
	}

	buf := make([]byte, len(p))
	copy(buf, p)

	msg := message{done: make(chan error, 1), payload: buf}
	select {
	case c.outgoing <- msg:
	case <-c.closeCh:
		return 0, ErrClosed
	}
	if err := <-msg.done; err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read returns device output relayed by the bridge, one message per
// call, CR-terminated like the raw serial stream.
func (c *Client) Read(p []byte) (n int, err error) {
	if len(c.readBuf) == 0 {
		select {
		case data := <-c.incoming:
			c.readBuf = append(data, '\r')
		case <-c.closeCh:
			return 0, io.EOF
		}
	}
	n = copy(p, c.readBuf)
	c.readBuf = c.readBuf[n:]
	return n, nil
}

// Close stops the client and drops the bridge connection.
func (c *Client) Close() error {
	close(c.closeCh)
	return nil
}
