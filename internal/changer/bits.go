// internal/changer/bits.go
package changer

import (
	"fmt"
	"math/bits"
)

// Output bank layout. Both lines are active-low.
const (
	selectBitsMask byte = 0b1010_1010 // odd bits
	powerBitsMask  byte = 0b0101_0101 // even bits
	detectBitsMask byte = 0x0F

	// BaselineOutput is every slot deselected and unpowered.
	BaselineOutput byte = 0xFF
)

// Mask is a set of slots, bit i = slot i.
type Mask uint8

func (m Mask) Has(s SlotID) bool { return s.Valid() && m&(1<<uint(s)) != 0 }

func (m Mask) Count() int { return bits.OnesCount8(uint8(m)) }

func (m Mask) with(s SlotID, on bool) Mask {
	if on {
		return m | 1<<uint(s)
	}
	return m &^ (1 << uint(s))
}

func (m Mask) String() string { return bitString(byte(m)) }

func powerBit(local uint8) uint { return uint(local) * 2 }

func selectBit(local uint8) uint { return uint(local)*2 + 1 }

// applySelect deselects every slot of the byte, then selects local.
func applySelect(out byte, local uint8) byte {
	out |= selectBitsMask
	return out &^ (1 << selectBit(local))
}

// applyPower drives only the power line of local.
func applyPower(out byte, local uint8, on bool) byte {
	if on {
		return out &^ (1 << powerBit(local))
	}
	return out | 1<<powerBit(local)
}

// decodeOutput reads power and select state back out of an output byte.
// selected is -1 when no select line is active.
func decodeOutput(out byte) (powered [SlotsPerHalf]bool, selected int) {
	selected = -1
	for local := uint8(0); local < SlotsPerHalf; local++ {
		powered[local] = out&(1<<powerBit(local)) == 0
		if out&(1<<selectBit(local)) == 0 && selected < 0 {
			selected = int(local)
		}
	}
	return powered, selected
}

// combineDetect merges both input banks into an active-high slot mask.
func combineDetect(in0, in1 byte) Mask {
	raw := (in1&detectBitsMask)<<4 | in0&detectBitsMask
	return Mask(^raw)
}

func bitString(b byte) string { return fmt.Sprintf("%08b", b) }
