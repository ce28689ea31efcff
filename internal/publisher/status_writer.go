// internal/publisher/status_writer.go
package publisher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sd-changer/internal/status"
)

// StatusWriter is the delivery-only contract for changer status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// blockStatusWriter is the concrete implementation used by serve.
type blockStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16 // live registers as last delivered
	nameRegs []uint16
}

// NewStatusWriter builds a status writer for one changer block.
func NewStatusWriter(plan StatusPlan, cli endpointClient) (*blockStatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	return &blockStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: status.EncodeName(plan.Name),
	}, nil
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *blockStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	baseAddr := sw.baseAddr()
	live := status.Live(s)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := make([]uint16, status.SlotsPerBlock)
		copy(regs, live)
		copy(regs[status.SlotNameStart:status.SlotNameEnd+1], sw.nameRegs)

		if err := sw.cli.WriteHolding(sw.plan.UnitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = live
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: only live registers that changed
	// ------------------------------------------------------------
	var errs []string

	for i, v := range live {
		if sw.last[i] == v {
			continue
		}
		if err := sw.cli.WriteHolding(sw.plan.UnitID, baseAddr+uint16(i), []uint16{v}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", i, err))
			continue
		}
		sw.last[i] = v
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next write.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *blockStatusWriter) baseAddr() uint16 {
	// Each changer owns a fixed SlotsPerBlock block.
	return sw.plan.BaseSlot * status.SlotsPerBlock
}
