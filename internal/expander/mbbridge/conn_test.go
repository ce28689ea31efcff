// internal/expander/mbbridge/conn_test.go
package mbbridge

import (
	"errors"
	"testing"

	"github.com/goburrow/modbus"
)

// ---- fake modbus client ----

// Only the two calls the bridge uses are implemented.
type fakeClient struct {
	modbus.Client

	slave *byte
	regs  map[[2]uint16]uint16 // {slave, register} -> value
	fail  bool
}

func (f *fakeClient) ReadHoldingRegisters(address, quantity uint16) ([]byte, error) {
	if f.fail {
		return nil, errors.New("exception 4")
	}
	v := f.regs[[2]uint16{uint16(*f.slave), address}]
	return []byte{byte(v >> 8), byte(v)}, nil
}

func (f *fakeClient) WriteSingleRegister(address, value uint16) ([]byte, error) {
	if f.fail {
		return nil, errors.New("exception 4")
	}
	f.regs[[2]uint16{uint16(*f.slave), address}] = value
	return []byte{byte(value >> 8), byte(value)}, nil
}

func newTestConn() (*Conn, *fakeClient) {
	var slave byte
	fc := &fakeClient{slave: &slave, regs: map[[2]uint16]uint16{}}
	return newConn(fc, func(id byte) { slave = id }, nil), fc
}

// ---- tests ----

func TestConn_SlaveIsDeviceAddress(t *testing.T) {
	c, fc := newTestConn()

	if err := c.WriteReg(0x26, 0x15, 0xDF); err != nil {
		t.Fatalf("WriteReg err=%v", err)
	}
	if fc.regs[[2]uint16{0x26, 0x15}] != 0xDF {
		t.Fatalf("write landed in wrong slave/register: %v", fc.regs)
	}

	fc.regs[[2]uint16{0x24, 0x12}] = 0x00F7
	v, err := c.ReadReg(0x24, 0x12)
	if err != nil {
		t.Fatalf("ReadReg err=%v", err)
	}
	if v != 0xF7 {
		t.Fatalf("ReadReg=%02x want F7", v)
	}
}

func TestConn_HighByteIgnored(t *testing.T) {
	c, fc := newTestConn()
	fc.regs[[2]uint16{0x20, 0x12}] = 0xAB0F

	v, err := c.ReadReg(0x20, 0x12)
	if err != nil {
		t.Fatalf("ReadReg err=%v", err)
	}
	if v != 0x0F {
		t.Fatalf("ReadReg=%02x want 0F", v)
	}
}

func TestConn_ErrorsPropagate(t *testing.T) {
	c, fc := newTestConn()
	fc.fail = true

	if _, err := c.ReadReg(0x20, 0x12); err == nil {
		t.Fatalf("expected read error")
	}
	if err := c.WriteReg(0x20, 0x15, 0); err == nil {
		t.Fatalf("expected write error")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
}

func TestDial_Validation(t *testing.T) {
	if _, err := Dial(Config{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
	if _, err := Dial(Config{Endpoint: "x", Mode: "udp"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
