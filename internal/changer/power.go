// internal/changer/power.go
package changer

import "github.com/sirupsen/logrus"

// SetPower switches power for slot. Only that slot's power line changes.
// Powering off the selected slot does not deselect it.
func (c *Changer) SetPower(slot SlotID, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	loc, err := c.requirePresent(slot)
	if err != nil {
		return err
	}

	out, err := c.modifyOutput(loc.Expander, func(b byte) byte {
		return applyPower(b, loc.Local, on)
	})
	if err != nil {
		return err
	}
	c.powered = c.powered.with(slot, on)

	c.log.WithFields(logrus.Fields{
		"slot":   int(slot),
		"on":     on,
		"output": bitString(out),
	}).Debug("power")
	return nil
}
