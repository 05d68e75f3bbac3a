// Package wire implements the framed binary protocol used to command
// the cleaner over its serial link.
//
// Every frame on the wire is:
//
//	sentinel (1 byte, 0xA5) || tag (1 byte) || payload length (4 bytes, little-endian) || payload
//
// The device resynchronizes on the sentinel byte and uses the declared
// length to find where the payload ends. Replies from the device are
// plain CR-terminated text and are not framed.
package wire

// Message tags. Each message kind has a fixed, unique tag; the device
// dispatches on it.
const (
	TagShutdown byte = 0x00
	TagCommand  byte = 0x01
)

// A Message is anything that can be framed and sent to the device.
//
// All three methods are pure: Tag is constant per message kind, and
// Encode always produces exactly Len bytes for the same value. The
// Transmitter refuses to write a frame where Len and Encode disagree.
type Message interface {
	// Tag returns the message kind's wire tag.
	Tag() byte

	// Len returns the exact payload length in bytes.
	Len() uint32

	// Encode returns the payload.
	Encode() []byte
}
