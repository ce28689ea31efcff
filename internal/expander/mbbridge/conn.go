// internal/expander/mbbridge/conn.go
package mbbridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Conn implements expander.Conn through a Modbus-to-I2C bridge.
//
// Bridge geometry:
//
//	slave id         = 7-bit I2C device address
//	holding register = device register address
//	register value   = register byte in the low 8 bits
//
// It serializes requests because it mutates SlaveId per transaction.
type Conn struct {
	mu       sync.Mutex
	client   modbus.Client
	setSlave func(byte)
	close    func() error
}

// Mode selects the Modbus transport.
type Mode string

const (
	ModeTCP Mode = "tcp"
	ModeRTU Mode = "rtu"
)

// Config is minimal transport config.
type Config struct {
	Mode     Mode
	Endpoint string // host:port for tcp, serial device for rtu
	BaudRate int
	Timeout  time.Duration
}

// Dial connects to the bridge.
func Dial(cfg Config) (*Conn, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("mbbridge: endpoint required")
	}

	switch cfg.Mode {
	case ModeTCP, "":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("mbbridge: connect %s: %w", cfg.Endpoint, err)
		}
		return newConn(modbus.NewClient(h), func(id byte) { h.SlaveId = id }, h.Close), nil

	case ModeRTU:
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("mbbridge: open %s: %w", cfg.Endpoint, err)
		}
		return newConn(modbus.NewClient(h), func(id byte) { h.SlaveId = id }, h.Close), nil
	}

	return nil, fmt.Errorf("mbbridge: unsupported mode %q", cfg.Mode)
}

func newConn(client modbus.Client, setSlave func(byte), closeFn func() error) *Conn {
	return &Conn{client: client, setSlave: setSlave, close: closeFn}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.close == nil {
		return nil
	}
	return c.close()
}

func (c *Conn) ReadReg(addr uint16, reg byte) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(byte(addr))

	b, err := c.client.ReadHoldingRegisters(uint16(reg), 1)
	if err != nil {
		return 0, err
	}
	if len(b) < 2 {
		return 0, fmt.Errorf("mbbridge: short read: got %d bytes", len(b))
	}
	// big-endian register, byte lives in the low half
	return b[1], nil
}

func (c *Conn) WriteReg(addr uint16, reg, v byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(byte(addr))

	_, err := c.client.WriteSingleRegister(uint16(reg), uint16(v))
	return err
}
