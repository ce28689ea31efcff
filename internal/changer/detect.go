// internal/changer/detect.go
package changer

import "github.com/sirupsen/logrus"

// Detect samples both input banks and returns the present-card mask
// (1 = card present). Count with Mask.Count.
// On a bus failure the cached mask is left unchanged.
func (c *Changer) Detect() (Mask, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detect()
}

// detect is Detect without locking. Caller holds mu.
func (c *Changer) detect() (Mask, error) {
	in0, err := c.readBank(Expander0, BankInput)
	if err != nil {
		return 0, err
	}
	in1, err := c.readBank(Expander1, BankInput)
	if err != nil {
		return 0, err
	}

	m := combineDetect(in0, in1)
	c.detected = m

	c.log.WithFields(logrus.Fields{
		"mask":  m.String(),
		"count": m.Count(),
	}).Debug("detected")
	return m, nil
}

// requirePresent validates slot and takes a fresh sample.
// Caller holds mu.
func (c *Changer) requirePresent(slot SlotID) (Location, error) {
	loc, err := Resolve(slot)
	if err != nil {
		return Location{}, err
	}
	m, err := c.detect()
	if err != nil {
		return Location{}, err
	}
	if !m.Has(slot) {
		return Location{}, &SlotError{Slot: slot, Err: ErrNotFound}
	}
	return loc, nil
}
