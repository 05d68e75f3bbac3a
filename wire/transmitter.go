package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Sentinel marks the start of every frame.
const Sentinel byte = 0xA5

// HeaderLen is the size of the sentinel plus header preceding a payload.
const HeaderLen = 6

// A Transmitter frames messages and writes them to a byte sink, usually
// an open serial port.
//
// It is safe for concurrent use: each frame is handed to the sink in a
// single Write call under a lock, so two sends never interleave on the
// wire.
type Transmitter struct {
	mx sync.Mutex
	w  io.Writer
}

// NewTransmitter creates a Transmitter writing frames to w.
func NewTransmitter(w io.Writer) *Transmitter {
	return &Transmitter{w: w}
}

// Send writes one complete frame for msg to the sink.
//
// The sink's error, if any, is returned wrapped; nothing is retried and
// nothing is buffered. If msg's declared length disagrees with its
// encoded payload the frame is not written at all.
func (t *Transmitter) Send(msg Message) error {
	tag := msg.Tag()
	length := msg.Len()
	payload := msg.Encode()
	if uint32(len(payload)) != length {
		return fmt.Errorf("wire: %T declares a %d byte payload but encoded %d", msg, length, len(payload))
	}

	frame := make([]byte, HeaderLen, HeaderLen+len(payload))
	frame[0] = Sentinel
	frame[1] = tag
	binary.LittleEndian.PutUint32(frame[2:], length)
	frame = append(frame, payload...)

	t.mx.Lock()
	defer t.mx.Unlock()
	if _, err := t.w.Write(frame); err != nil {
		return fmt.Errorf("wire: write frame: %w", err)
	}
	return nil
}

// Close closes the underlying sink, if it implements io.Closer.
func (t *Transmitter) Close() error {
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
