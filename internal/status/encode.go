// internal/status/encode.go
package status

import (
	"encoding/binary"
	"math/bits"
)

// Encode converts a Snapshot and board name into a full status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot, name string) []uint16 {
	regs := make([]uint16, SlotsPerBlock)

	copy(regs, Live(s))

	// Slots 8-10 and 19 are RESERVED -> left as zero
	copy(regs[SlotNameStart:SlotNameEnd+1], EncodeName(name))

	return regs
}

// Live returns registers 0..SlotLiveEnd.
func Live(s Snapshot) []uint16 {
	regs := make([]uint16, SlotLiveEnd+1)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotDetectedMask] = uint16(s.Detected)
	regs[SlotDetectedCount] = uint16(bits.OnesCount8(s.Detected))
	regs[SlotPoweredMask] = uint16(s.Powered)
	regs[SlotPoweredCount] = uint16(bits.OnesCount8(s.Powered))
	regs[SlotSelected] = s.Selected

	return regs
}

// EncodeName packs the board name into SlotNameSlots registers, two
// characters per register, high byte first. Longer names are cut at
// NameMaxChars; bytes outside printable ASCII become '?'.
func EncodeName(name string) []uint16 {
	var buf [NameMaxChars]byte
	n := copy(buf[:], name)
	for i, c := range buf[:n] {
		if c < ' ' || c > '~' {
			buf[i] = '?'
		}
	}

	out := make([]uint16, SlotNameSlots)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(buf[2*i:])
	}
	return out
}
