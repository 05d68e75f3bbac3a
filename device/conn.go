// Package device connects to the cleaner over a byte link: framed
// commands go out through the wire package, unframed CR-terminated text
// comes back.
package device

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mastercactapus/cleanerctl/command"
	"github.com/mastercactapus/cleanerctl/wire"
)

// A Conn represents a connection to the cleaner.
//
// Sends are serialized by the Transmitter; the read side runs in its
// own goroutine against the link's read half, so reading never delays
// an in-flight send.
type Conn struct {
	tx   *wire.Transmitter
	scan *bufio.Scanner

	mx   sync.Mutex
	last State

	state   chan State
	lines   chan string
	closeCh chan struct{}
}

// NewConn creates a Conn using the provided ReadWriter for data.
func NewConn(rw io.ReadWriter) *Conn {
	scan := bufio.NewScanner(rw)
	scan.Split(splitCR)
	c := &Conn{
		tx:      wire.NewTransmitter(rw),
		scan:    scan,
		state:   make(chan State),
		lines:   make(chan string),
		closeCh: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// the device terminates replies with '\r'
func splitCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		return i + 1, bytes.TrimSpace(data[:i]), nil
	}
	if atEOF {
		return len(data), bytes.TrimSpace(data), nil
	}
	return 0, nil, nil
}

func (c *Conn) readLoop() {
	for c.scan.Scan() {
		data := string(c.scan.Bytes())
		if data == "" {
			continue
		}
		if data[0] == '<' {
			stat, err := parseState(c.CurrentState(), data)
			if err != nil {
				log.Println("ERROR: parse state:", err)
				continue
			}
			c.mx.Lock()
			c.last = *stat
			c.mx.Unlock()
			select {
			case c.state <- *stat:
			default:
			}
			continue
		}
		select {
		case c.lines <- data:
		case <-c.closeCh:
			return
		}
	}
	if err := c.scan.Err(); err != nil {
		select {
		case <-c.closeCh:
		default:
			log.Println("ERROR: read from device:", err)
		}
	}
	close(c.lines)
	close(c.state)
}

// Send frames msg and writes it to the device.
func (c *Conn) Send(msg wire.Message) error { return c.tx.Send(msg) }

// SendCommand frames one line of command text.
func (c *Conn) SendCommand(text string) error {
	cmd, err := wire.NewCommand(text)
	if err != nil {
		return err
	}
	return c.tx.Send(cmd)
}

// Run validates and sends each block in order, stopping at the first
// error. Whether already-sent blocks are resent on retry is up to the
// caller.
func (c *Conn) Run(blocks []command.Block) error {
	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if err := c.SendCommand(b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown tells the device to release its motors and halt.
func (c *Conn) Shutdown() error { return c.tx.Send(wire.Shutdown{}) }

// Lines returns the device's non-status replies. The channel is closed
// when the link goes away.
func (c *Conn) Lines() <-chan string { return c.lines }

// State emits parsed status reports. Reports are dropped if nobody is
// receiving.
func (c *Conn) State() <-chan State { return c.state }

// CurrentState returns the last status the device reported.
func (c *Conn) CurrentState() State {
	c.mx.Lock()
	stat := c.last
	c.mx.Unlock()
	return stat
}

// Close aborts the read loop and closes the underlying ReadWriter, if
// it implements io.Closer.
func (c *Conn) Close() error {
	close(c.closeCh)
	return c.tx.Close()
}
