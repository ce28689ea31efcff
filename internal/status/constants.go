// internal/status/constants.go
package status

// Changer Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of registers per changer block.
const SlotsPerBlock = 20

// ---- HEALTH ----

// SlotHealthCode holds the changer health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error code (changer error Code()).
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the changer has been in error.
const SlotSecondsInError = 2

// ---- CARD STATE ----

// SlotDetectedMask holds the present-card mask, bit n = slot n.
const SlotDetectedMask = 3

// SlotDetectedCount holds the number of present cards.
const SlotDetectedCount = 4

// SlotPoweredMask holds the powered-slot mask.
const SlotPoweredMask = 5

// SlotPoweredCount holds the number of powered slots.
const SlotPoweredCount = 6

// SlotSelected holds the selected slot, or NoSelection.
const SlotSelected = 7

// SlotLiveEnd is the last live register (inclusive).
// Registers 0..SlotLiveEnd are rewritten incrementally.
const SlotLiveEnd = SlotSelected

// NoSelection marks "no slot selected" in SlotSelected.
const NoSelection uint16 = 0xFFFF

// ---- RESERVED RANGE ----

// Slots 8-10 are reserved for future use.
const SlotReservedStart = 8
const SlotReservedEnd = 10

// ---- BOARD NAME ----

// SlotNameStart is the first register used for the board name.
const SlotNameStart = 11

// SlotNameSlots is the number of registers reserved for the board name.
const SlotNameSlots = 8

// SlotNameEnd is the last register used for the board name (inclusive).
// Register 19 stays reserved.
const SlotNameEnd = SlotNameStart + SlotNameSlots - 1

// ---- LIMITS ----

// NameMaxChars is the maximum number of ASCII characters stored for the name.
const NameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy changer.
const HealthOK uint16 = 1

// HealthError represents a changer error state.
const HealthError uint16 = 2
