// internal/board/builder_test.go
package board

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/sd-changer/internal/changer"
	cfg "github.com/tamzrod/sd-changer/internal/config"
	"github.com/tamzrod/sd-changer/internal/expander"
)

// ---- fake register connection ----

type fakeConn struct {
	regs map[[2]uint16]byte // {addr, reg} -> value
}

func (f *fakeConn) ReadReg(addr uint16, reg byte) (byte, error) {
	return f.regs[[2]uint16{addr, uint16(reg)}], nil
}

func (f *fakeConn) WriteReg(addr uint16, reg, v byte) error {
	f.regs[[2]uint16{addr, uint16(reg)}] = v
	return nil
}

func boardConfig() cfg.ChangerConfig {
	return cfg.ChangerConfig{
		Name: "bench",
		Bus:  cfg.BusConfig{Kind: cfg.BusI2C},
		Expanders: []cfg.ExpanderConfig{
			{Address: 0x26},
			{Address: 0x24},
		},
		Ports: []cfg.PortConfig{
			{Clk: 14, Cmd: 15, D0: 2, D1: 4, D2: 12, D3: 13, Width: 4},
			{Clk: 18, Cmd: 19, D0: 21, Width: 1},
		},
	}
}

// ---- tests ----

func TestPorts_IndexedByHalf(t *testing.T) {
	ports, err := Ports(boardConfig())
	if err != nil {
		t.Fatalf("Ports err=%v", err)
	}
	if ports[changer.PortA].Clk != 14 || ports[changer.PortA].Width != 4 {
		t.Fatalf("port A=%+v", ports[changer.PortA])
	}
	if ports[changer.PortB].D0 != 21 || ports[changer.PortB].Width != 1 {
		t.Fatalf("port B=%+v", ports[changer.PortB])
	}
}

func TestPorts_WrongCount(t *testing.T) {
	c := boardConfig()
	c.Ports = c.Ports[:1]

	if _, err := Ports(c); err == nil {
		t.Fatalf("expected error for one port table")
	}
}

func TestAssemble_WiresPairAndOptions(t *testing.T) {
	c := boardConfig()
	off := false
	pu := uint8(0x0F)
	c.CrossHalfExclusive = &off
	c.Expanders[1].Pullups = &pu

	conn := &fakeConn{regs: map[[2]uint16]byte{}}
	ch, err := assemble(c, conn, logrus.New())
	if err != nil {
		t.Fatalf("assemble err=%v", err)
	}

	if err := ch.Init(); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	if got := conn.regs[[2]uint16{0x24, expander.RegGPPUA}]; got != 0x0F {
		t.Fatalf("expander1 pullups=%02x want 0F", got)
	}
	if got := conn.regs[[2]uint16{0x26, expander.RegGPPUA}]; got != 0xFF {
		t.Fatalf("expander0 pullups=%02x want FF", got)
	}

	// slot 1 on expander0 and slot 6 on expander1 both present
	conn.regs[[2]uint16{0x26, expander.RegGPIOA}] = 0xFD
	conn.regs[[2]uint16{0x24, expander.RegGPIOA}] = 0xFB

	if _, err := ch.Select(1); err != nil {
		t.Fatalf("Select(1) err=%v", err)
	}
	pins, err := ch.Select(6)
	if err != nil {
		t.Fatalf("Select(6) err=%v", err)
	}
	if pins.D0 != 21 {
		t.Fatalf("Select(6) returned port A pins: %+v", pins)
	}

	// cross-half exclusivity disabled: slot 1 stays selected on expander0
	if got := conn.regs[[2]uint16{0x26, expander.RegOLATB}]; got != 0b1111_0111 {
		t.Fatalf("expander0 OLATB=%08b", got)
	}
	if got := conn.regs[[2]uint16{0x24, expander.RegOLATB}]; got != 0b1101_1111 {
		t.Fatalf("expander1 OLATB=%08b", got)
	}
}

func TestAssemble_RejectsDuplicateAddress(t *testing.T) {
	c := boardConfig()
	c.Expanders[1].Address = 0x26

	if _, err := assemble(c, &fakeConn{regs: map[[2]uint16]byte{}}, nil); err == nil {
		t.Fatalf("expected duplicate address error")
	}
}

func TestOpenConn_UnknownKind(t *testing.T) {
	if _, _, err := openConn(cfg.BusConfig{Kind: "spi"}); err == nil {
		t.Fatalf("expected error for unknown bus kind")
	}
}
