// internal/expander/mcp23017.go
package expander

import (
	"errors"
	"fmt"
)

// MCP23017 register addresses, IOCON.BANK = 0 (power-on default).
const (
	RegIODIRA = 0x00
	RegIODIRB = 0x01
	RegGPPUA  = 0x0C
	RegGPPUB  = 0x0D
	RegGPIOA  = 0x12
	RegGPIOB  = 0x13
	RegOLATA  = 0x14
	RegOLATB  = 0x15
)

// Address range of the part: base + (A2,A1,A0).
const (
	BaseAddress = 0x20
	MaxAddress  = 0x27
)

// Port is one 8-bit side of the chip.
type Port uint8

const (
	PortA Port = iota
	PortB
)

// Conn moves single register bytes to and from a device on a shared bus.
type Conn interface {
	ReadReg(addr uint16, reg byte) (byte, error)
	WriteReg(addr uint16, reg, v byte) error
}

// Device is one MCP23017 at a fixed address.
type Device struct {
	conn Conn
	addr uint16
}

// New creates a device handle. The address may be the strap value (0-7)
// or the full 7-bit address (0x20-0x27).
func New(conn Conn, addr uint16) (*Device, error) {
	if conn == nil {
		return nil, errors.New("mcp23017: conn required")
	}
	if addr < 8 {
		addr += BaseAddress
	}
	if addr < BaseAddress || addr > MaxAddress {
		return nil, fmt.Errorf("mcp23017: address 0x%02x out of range 0x20-0x27", addr)
	}
	return &Device{conn: conn, addr: addr}, nil
}

func (d *Device) Addr() uint16 { return d.addr }

// SetDirection writes IODIR. 1 = input, 0 = output.
func (d *Device) SetDirection(p Port, inputs byte) error {
	return d.write(pick(p, RegIODIRA, RegIODIRB), inputs)
}

// SetPullups writes GPPU. Only meaningful on input pins.
func (d *Device) SetPullups(p Port, mask byte) error {
	return d.write(pick(p, RegGPPUA, RegGPPUB), mask)
}

// ReadPort reads the pin levels.
func (d *Device) ReadPort(p Port) (byte, error) {
	return d.read(pick(p, RegGPIOA, RegGPIOB))
}

// ReadLatch reads the output latch, i.e. what was last written.
func (d *Device) ReadLatch(p Port) (byte, error) {
	return d.read(pick(p, RegOLATA, RegOLATB))
}

// WriteLatch drives the output latch.
func (d *Device) WriteLatch(p Port, v byte) error {
	return d.write(pick(p, RegOLATA, RegOLATB), v)
}

func (d *Device) read(reg byte) (byte, error) {
	v, err := d.conn.ReadReg(d.addr, reg)
	if err != nil {
		return 0, fmt.Errorf("mcp23017 addr=0x%02x reg=0x%02x: read: %w", d.addr, reg, err)
	}
	return v, nil
}

func (d *Device) write(reg, v byte) error {
	if err := d.conn.WriteReg(d.addr, reg, v); err != nil {
		return fmt.Errorf("mcp23017 addr=0x%02x reg=0x%02x: write: %w", d.addr, reg, err)
	}
	return nil
}

func pick(p Port, a, b byte) byte {
	if p == PortA {
		return a
	}
	return b
}
