// Package command parses the cleaner's text command language.
//
// Commands are short word/argument lines like "G0 R90 C1.5". Parsing
// them host-side means malformed text is rejected before it is ever
// framed for the device.
package command

import (
	"strconv"
	"strings"
)

type Word struct {
	W   byte
	Arg float64
}

// IsAxis reports whether the word addresses one of the cleaner's axes:
// jaw position (J), jaw rotation (R) or clamp (C).
func (w Word) IsAxis() bool {
	switch w.W {
	case 'J', 'R', 'C':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, 3)
}
