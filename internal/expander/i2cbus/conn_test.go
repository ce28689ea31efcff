// internal/expander/i2cbus/conn_test.go
package i2cbus

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/tamzrod/sd-changer/internal/changer"
	"github.com/tamzrod/sd-changer/internal/expander"
)

func TestConn_ReadWriteReg(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x26, W: []byte{expander.RegGPIOA}, R: []byte{0xFB}},
			{Addr: 0x26, W: []byte{expander.RegOLATB, 0xDF}},
		},
		DontPanic: true,
	}

	c, err := New(bus)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	v, err := c.ReadReg(0x26, expander.RegGPIOA)
	if err != nil {
		t.Fatalf("ReadReg err=%v", err)
	}
	if v != 0xFB {
		t.Fatalf("ReadReg=%02x want FB", v)
	}

	if err := c.WriteReg(0x26, expander.RegOLATB, 0xDF); err != nil {
		t.Fatalf("WriteReg err=%v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("not all ops played: %v", err)
	}
}

func TestConn_DetectOverPlayback(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x26, W: []byte{expander.RegGPIOA}, R: []byte{0b1111_1011}},
			{Addr: 0x24, W: []byte{expander.RegGPIOA}, R: []byte{0b1111_0111}},
		},
		DontPanic: true,
	}

	c, err := New(bus)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	pair, err := expander.NewPair(c, 0x26, 0x24)
	if err != nil {
		t.Fatalf("NewPair err=%v", err)
	}
	ch, err := changer.New(pair, [2]changer.PortPins{})
	if err != nil {
		t.Fatalf("changer.New err=%v", err)
	}

	m, err := ch.Detect()
	if err != nil {
		t.Fatalf("Detect err=%v", err)
	}
	if m != 0b1000_0100 {
		t.Fatalf("mask=%s want 10000100", m)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("not all ops played: %v", err)
	}
}

func TestConn_UnexpectedTxFails(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}

	c, err := New(bus)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	if _, err := c.ReadReg(0x20, expander.RegGPIOA); err == nil {
		t.Fatalf("expected error on unexpected transaction")
	}
}

func TestNew_NilBus(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil bus")
	}
}
