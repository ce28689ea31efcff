// internal/monitor/types.go
package monitor

import (
	"time"

	"github.com/tamzrod/sd-changer/internal/changer"
)

// Result is a snapshot produced by one poll cycle.
type Result struct {
	Name string
	At   time.Time

	// State is valid only when Err is nil.
	State changer.State
	Err   error // non-nil means the poll cycle failed
}
