// internal/publisher/modbus/client.go
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client writes status blocks to one Modbus TCP server.
// Calls are serialized: the unit id lives on the shared handler.
type Client struct {
	mu sync.Mutex
	h  *modbus.TCPClientHandler
	mb modbus.Client
}

type Config struct {
	Endpoint string // host:port
	Timeout  time.Duration
}

// Dial connects once. No retries.
func Dial(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("publisher modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("publisher modbus: connect %s: %w", cfg.Endpoint, err)
	}
	return &Client{h: h, mb: modbus.NewClient(h)}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h.Close()
}

// WriteHolding stores regs at addr on unit (FC 16).
func (c *Client) WriteHolding(unit uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.h.SlaveId = unit
	_, err := c.mb.WriteMultipleRegisters(addr, uint16(len(regs)), registerBytes(regs))
	return err
}

// registerBytes is the FC 16 payload: each register high byte first.
func registerBytes(regs []uint16) []byte {
	b := make([]byte, 0, 2*len(regs))
	for _, r := range regs {
		b = binary.BigEndian.AppendUint16(b, r)
	}
	return b
}
