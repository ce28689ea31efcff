// internal/publisher/mirror.go
package publisher

import (
	"errors"

	"github.com/tamzrod/sd-changer/internal/monitor"
	"github.com/tamzrod/sd-changer/internal/status"
)

// Mirror is the runner-owned status state.
// It folds poll results and 1 Hz ticks into a Snapshot and reports
// whether anything changed. It never writes.
type Mirror struct {
	snap status.Snapshot
}

// NewMirror starts in the boot state.
func NewMirror() *Mirror {
	return &Mirror{snap: status.Boot()}
}

// Snapshot returns the current snapshot.
func (m *Mirror) Snapshot() status.Snapshot { return m.snap }

// Apply folds one poll result.
func (m *Mirror) Apply(res monitor.Result) bool {
	prev := m.snap

	if res.Err == nil {
		// Recovery / OK
		m.snap.Health = status.HealthOK
		m.snap.LastErrorCode = 0
		m.snap.SecondsInError = 0
		m.snap = m.snap.WithState(res.State)
	} else {
		// Error: card state keeps its last good value.
		m.snap.Health = status.HealthError
		m.snap.LastErrorCode = ErrorCode(res.Err)

		// NOTE: seconds_in_error increments on the 1Hz ticker only.
	}

	return m.snap != prev
}

// Tick advances seconds_in_error while not OK. It saturates, never wraps.
func (m *Mirror) Tick() bool {
	if m.snap.Health == status.HealthOK {
		return false
	}
	if m.snap.SecondsInError == 65535 {
		return false
	}
	m.snap.SecondsInError++
	return true
}

// ErrorCode returns the Code() of the first error in the chain that has one.
// nil is 0; an error without a code is 1 (generic).
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var coded interface{ Code() uint16 }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return 1
}
