// internal/expander/i2cbus/conn.go
package i2cbus

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// Conn implements expander.Conn on a periph I2C bus.
// It serializes transactions: the bus handle has no locking of its own.
type Conn struct {
	mu  sync.Mutex
	bus i2c.Bus
	c   func() error
}

// Config is minimal bus config.
type Config struct {
	Name    string // i2creg name; "" = first registered bus
	SpeedHz int64  // 0 = leave the bus speed alone
}

// Open opens a registered bus. The host drivers must already be
// initialized (host.Init).
func Open(cfg Config) (*Conn, error) {
	bc, err := i2creg.Open(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("i2cbus: open %q: %w", cfg.Name, err)
	}
	if cfg.SpeedHz > 0 {
		if err := bc.SetSpeed(physic.Frequency(cfg.SpeedHz) * physic.Hertz); err != nil {
			_ = bc.Close()
			return nil, fmt.Errorf("i2cbus: set speed %d Hz: %w", cfg.SpeedHz, err)
		}
	}
	return &Conn{bus: bc, c: bc.Close}, nil
}

// New wraps an already-open bus. Closing the Conn does not close it.
func New(bus i2c.Bus) (*Conn, error) {
	if bus == nil {
		return nil, errors.New("i2cbus: bus required")
	}
	return &Conn{bus: bus}, nil
}

// Close releases the bus if Open created it.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.c == nil {
		return nil
	}
	err := c.c()
	c.c = nil
	return err
}

func (c *Conn) String() string { return c.bus.String() }

// ReadReg writes the register pointer then reads one byte (repeated start).
func (c *Conn) ReadReg(addr uint16, reg byte) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var r [1]byte
	if err := c.bus.Tx(addr, []byte{reg}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// WriteReg writes the register pointer followed by the value.
func (c *Conn) WriteReg(addr uint16, reg, v byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.bus.Tx(addr, []byte{reg, v}, nil)
}
