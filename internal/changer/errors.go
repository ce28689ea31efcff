// internal/changer/errors.go
package changer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlot reports a slot outside 0..7. Caller bug, never retried.
	ErrInvalidSlot = errors.New("changer: invalid slot")

	// ErrNotFound reports an operation on a slot with no detected card.
	ErrNotFound = errors.New("changer: card not detected")
)

// Error codes exposed through Code(). Stable: they end up in the status block.
const (
	CodeGeneric        uint16 = 1
	CodeInvalidSlot    uint16 = 2
	CodeNotFound       uint16 = 3
	CodeRegisterAccess uint16 = 4
)

// SlotError carries the slot an operation was rejected for.
type SlotError struct {
	Slot SlotID
	Err  error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%v (slot=%d)", e.Err, int(e.Slot))
}

func (e *SlotError) Unwrap() error { return e.Err }

func (e *SlotError) Code() uint16 {
	switch {
	case errors.Is(e.Err, ErrInvalidSlot):
		return CodeInvalidSlot
	case errors.Is(e.Err, ErrNotFound):
		return CodeNotFound
	}
	return CodeGeneric
}

// RegisterAccessError wraps a bus failure. The changer state is left as of
// the last successful operation; call Sync before trusting cached masks.
type RegisterAccessError struct {
	Expander ExpanderRef
	Bank     Bank
	Op       string // "read", "write", "configure"
	Err      error
}

func (e *RegisterAccessError) Error() string {
	return fmt.Sprintf("changer: %s %s bank %s: %v", e.Op, e.Expander, e.Bank, e.Err)
}

func (e *RegisterAccessError) Unwrap() error { return e.Err }

func (e *RegisterAccessError) Code() uint16 { return CodeRegisterAccess }
