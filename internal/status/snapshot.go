// internal/status/snapshot.go
package status

import "github.com/tamzrod/sd-changer/internal/changer"

// Snapshot represents exactly what the publisher is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Detected uint8
	Powered  uint8
	Selected uint16 // slot number, or NoSelection
}

// Boot is the snapshot published before the first poll.
func Boot() Snapshot {
	return Snapshot{Health: HealthUnknown, Selected: NoSelection}
}

// WithState copies changer bookkeeping into the card-state fields.
func (s Snapshot) WithState(st changer.State) Snapshot {
	s.Detected = uint8(st.Detected)
	s.Powered = uint8(st.Powered)
	s.Selected = NoSelection
	if st.Selected != changer.NoSlot {
		s.Selected = uint16(st.Selected)
	}
	return s
}
