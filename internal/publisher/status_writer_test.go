// internal/publisher/status_writer_test.go
package publisher

import (
	"errors"
	"testing"

	"github.com/tamzrod/sd-changer/internal/changer"
	"github.com/tamzrod/sd-changer/internal/status"
)

type writeCall struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

type fakeEndpointClient struct {
	writes []writeCall
	fail   bool
}

func (f *fakeEndpointClient) WriteHolding(unit uint8, addr uint16, regs []uint16) error {
	if f.fail {
		return errors.New("connection reset")
	}
	f.writes = append(f.writes, writeCall{
		unitID: unit,
		addr:   addr,
		regs:   append([]uint16(nil), regs...),
	})
	return nil
}

func (f *fakeEndpointClient) last() writeCall { return f.writes[len(f.writes)-1] }

func testPlan() StatusPlan {
	return StatusPlan{
		Endpoint: "status-endpoint",
		UnitID:   7,
		BaseSlot: 2,
		Name:     "RACK-A",
	}
}

// ---- tests ----

func TestNewStatusWriter_RequiresClient(t *testing.T) {
	if _, err := NewStatusWriter(testPlan(), nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewStatusWriter(testPlan(), cli)
	if err != nil {
		t.Fatalf("NewStatusWriter err=%v", err)
	}

	// ---- first write: FULL ASSERT ----
	if err := sw.WriteStatus(status.Boot()); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	w := cli.last()
	if len(w.regs) != status.SlotsPerBlock {
		t.Fatalf("expected full block write (%d regs), got %d", status.SlotsPerBlock, len(w.regs))
	}
	if w.addr != 2*status.SlotsPerBlock || w.unitID != 7 {
		t.Fatalf("full block at unit=%d addr=%d", w.unitID, w.addr)
	}

	expectedName := status.EncodeName("RACK-A")
	for i := 0; i < status.SlotNameSlots; i++ {
		slot := status.SlotNameStart + i
		if w.regs[slot] != expectedName[i] {
			t.Fatalf("name slot %d mismatch: got=%d want=%d", slot, w.regs[slot], expectedName[i])
		}
	}

	// ---- second write: INCREMENTAL ONLY ----
	next := status.Boot().WithState(changer.State{Selected: 3, Detected: 0b0000_1000})
	next.Health = status.HealthOK

	before := len(cli.writes)
	if err := sw.WriteStatus(next); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	// health, detected mask, detected count, selected
	if got := len(cli.writes) - before; got != 4 {
		t.Fatalf("incremental writes=%d want 4", got)
	}
	for _, w := range cli.writes[before:] {
		if len(w.regs) != 1 {
			t.Fatalf("incremental write of %d regs", len(w.regs))
		}
		if w.addr >= 2*status.SlotsPerBlock+status.SlotNameStart {
			t.Fatalf("name rewritten on incremental update (addr=%d)", w.addr)
		}
	}
	if w := cli.last(); w.addr != 2*status.SlotsPerBlock+status.SlotSelected || w.regs[0] != 3 {
		t.Fatalf("selected write addr=%d regs=%v", w.addr, w.regs)
	}
}

func TestNoWriteWhenUnchanged(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewStatusWriter(testPlan(), cli)

	s := status.Boot()
	_ = sw.WriteStatus(s)
	_ = sw.WriteStatus(s)

	if len(cli.writes) != 1 {
		t.Fatalf("writes=%d want 1", len(cli.writes))
	}
}

func TestFailureForcesFullReassert(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewStatusWriter(testPlan(), cli)
	_ = sw.WriteStatus(status.Boot())

	cli.fail = true
	s := status.Boot()
	s.Health = status.HealthError
	if err := sw.WriteStatus(s); err == nil {
		t.Fatalf("expected write error")
	}

	cli.fail = false
	if err := sw.WriteStatus(s); err != nil {
		t.Fatalf("recovery write err=%v", err)
	}
	if len(cli.last().regs) != status.SlotsPerBlock {
		t.Fatalf("expected full re-assert after failure")
	}
}

func TestSecondsInErrorResetOnRecovery(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewStatusWriter(testPlan(), cli)

	errSnap := status.Boot()
	errSnap.Health = status.HealthError
	errSnap.LastErrorCode = changer.CodeRegisterAccess
	errSnap.SecondsInError = 3
	if err := sw.WriteStatus(errSnap); err != nil {
		t.Fatalf("error snapshot write failed: %v", err)
	}

	okSnap := status.Boot()
	okSnap.Health = status.HealthOK
	if err := sw.WriteStatus(okSnap); err != nil {
		t.Fatalf("recovery snapshot write failed: %v", err)
	}

	expectedAddr := 2*status.SlotsPerBlock + uint16(status.SlotSecondsInError)
	if w := cli.last(); w.addr != expectedAddr || w.regs[0] != 0 {
		t.Fatalf("seconds_in_error not reset: addr=%d regs=%v", w.addr, w.regs)
	}
}
