// internal/expander/pair.go
package expander

import (
	"fmt"

	"github.com/tamzrod/sd-changer/internal/changer"
)

// Pair is the two expanders of the changer board. It implements changer.Bus:
// the input bank is port A (detect lines), the output bank is port B
// (power/select lines).
type Pair struct {
	devs [changer.ExpanderCount]*Device
}

// NewPair creates both devices on one connection.
func NewPair(conn Conn, addr0, addr1 uint16) (*Pair, error) {
	if addr0 == addr1 {
		return nil, fmt.Errorf("expander: both devices at address 0x%02x", addr0)
	}
	d0, err := New(conn, addr0)
	if err != nil {
		return nil, err
	}
	d1, err := New(conn, addr1)
	if err != nil {
		return nil, err
	}
	return &Pair{devs: [changer.ExpanderCount]*Device{d0, d1}}, nil
}

func (p *Pair) ReadBank(e changer.ExpanderRef, b changer.Bank) (byte, error) {
	d, err := p.dev(e)
	if err != nil {
		return 0, err
	}
	if b == changer.BankInput {
		return d.ReadPort(PortA)
	}
	// The latch is what we drove; pin levels may lag on loaded lines.
	return d.ReadLatch(PortB)
}

func (p *Pair) WriteBank(e changer.ExpanderRef, b changer.Bank, v byte) error {
	d, err := p.dev(e)
	if err != nil {
		return err
	}
	return d.WriteLatch(portFor(b), v)
}

func (p *Pair) ConfigureBank(e changer.ExpanderRef, b changer.Bank, s changer.BankSetup) error {
	d, err := p.dev(e)
	if err != nil {
		return err
	}
	port := portFor(b)

	var dir byte
	if s.Input {
		dir = 0xFF
	}
	if err := d.SetDirection(port, dir); err != nil {
		return err
	}
	return d.SetPullups(port, s.Pullups)
}

func (p *Pair) dev(e changer.ExpanderRef) (*Device, error) {
	if int(e) >= len(p.devs) {
		return nil, fmt.Errorf("expander: unknown %s", e)
	}
	return p.devs[e], nil
}

func portFor(b changer.Bank) Port {
	if b == changer.BankInput {
		return PortA
	}
	return PortB
}
