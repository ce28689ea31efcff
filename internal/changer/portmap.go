// internal/changer/portmap.go
package changer

import "fmt"

// SlotCount is the number of logical slots on the board.
const SlotCount = 8

// SlotsPerHalf is the number of slots driven by one expander.
const SlotsPerHalf = 4

// SlotID identifies one physical SD socket, 0..7.
type SlotID int

func (s SlotID) Valid() bool { return s >= 0 && s < SlotCount }

// PortHalf is one of the two SDMMC wiring sets.
type PortHalf uint8

const (
	PortA PortHalf = iota // slots 0-3
	PortB                 // slots 4-7
)

func (h PortHalf) String() string {
	switch h {
	case PortA:
		return "A"
	case PortB:
		return "B"
	}
	return fmt.Sprintf("PortHalf(%d)", uint8(h))
}

// ExpanderRef identifies one of the two I/O expanders.
type ExpanderRef uint8

const (
	Expander0 ExpanderRef = iota
	Expander1
)

// ExpanderCount is the number of expanders on the board.
const ExpanderCount = 2

func (e ExpanderRef) String() string { return fmt.Sprintf("expander%d", uint8(e)) }

// Location is where a slot lives electrically.
type Location struct {
	Expander ExpanderRef
	Local    uint8 // 0..3
	Half     PortHalf
}

// Resolve maps a logical slot to its expander, local index and port half.
// Pure geometry: no IO.
func Resolve(slot SlotID) (Location, error) {
	if !slot.Valid() {
		return Location{}, &SlotError{Slot: slot, Err: ErrInvalidSlot}
	}
	if slot < SlotsPerHalf {
		return Location{Expander: Expander0, Local: uint8(slot), Half: PortA}, nil
	}
	return Location{Expander: Expander1, Local: uint8(slot - SlotsPerHalf), Half: PortB}, nil
}

// slotAt is the inverse of Resolve.
func slotAt(exp ExpanderRef, local uint8) SlotID {
	return SlotID(int(exp)*SlotsPerHalf + int(local))
}
