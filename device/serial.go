package device

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// PortConfig holds serial port parameters for a directly attached
// cleaner.
type PortConfig struct {
	// Name is the port path, e.g. "/dev/ttyUSB0" or "COM9".
	Name string
	Baud int

	// ReadTimeout bounds each read so the read loop can notice a dead
	// link. Zero blocks forever.
	ReadTimeout time.Duration
}

// OpenPort opens the serial port the cleaner is attached to.
func OpenPort(cfg PortConfig) (io.ReadWriteCloser, error) {
	return serial.OpenPort(&serial.Config{
		Name:        cfg.Name,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
}
