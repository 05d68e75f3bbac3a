package wire

import (
	"bytes"
	"errors"
)

// CommandLen is the fixed width of a command payload on the wire.
// Shorter command text is zero-padded on the right.
const CommandLen = 40

// ErrCommandTooLong is returned by NewCommand when the command text
// does not fit the fixed wire field.
var ErrCommandTooLong = errors.New("wire: command exceeds 40 bytes")

// A Command carries one line of command text for the device.
//
// The zero value encodes as an empty (all-zero) command; use NewCommand
// to build one from text.
type Command struct {
	text [CommandLen]byte
}

// NewCommand returns a Command for the given text.
//
// Text longer than CommandLen bytes is rejected with ErrCommandTooLong;
// it is never truncated.
func NewCommand(text string) (Command, error) {
	var c Command
	if len(text) > CommandLen {
		return c, ErrCommandTooLong
	}
	copy(c.text[:], text)
	return c, nil
}

// Text returns the command text without the zero padding.
func (c Command) Text() string {
	return string(bytes.TrimRight(c.text[:], "\x00"))
}

func (Command) Tag() byte   { return TagCommand }
func (Command) Len() uint32 { return CommandLen }

func (c Command) Encode() []byte {
	p := make([]byte, CommandLen)
	copy(p, c.text[:])
	return p
}
