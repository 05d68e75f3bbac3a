package wire

// shutdownLen is the width of a Shutdown payload: one int32.
const shutdownLen = 4

// A Shutdown tells the device to release all motors and halt.
type Shutdown struct{}

func (Shutdown) Tag() byte   { return TagShutdown }
func (Shutdown) Len() uint32 { return shutdownLen }

// Encode returns a zero int32, little-endian.
func (Shutdown) Encode() []byte { return make([]byte, shutdownLen) }
