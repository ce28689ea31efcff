// internal/publisher/builder.go
package publisher

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/sd-changer/internal/config"
	pmodbus "github.com/tamzrod/sd-changer/internal/publisher/modbus"
)

// BuildPlan converts the status config into a StatusPlan.
// Returns false when the status mirror is disabled.
func BuildPlan(c *cfg.Config) (StatusPlan, bool) {
	if c == nil || c.Status == nil {
		return StatusPlan{}, false
	}
	return StatusPlan{
		Endpoint: c.Status.Endpoint,
		UnitID:   c.Status.UnitID,
		BaseSlot: c.Status.BaseSlot,
		Name:     c.Changer.Name,
	}, true
}

// Build connects the endpoint client and returns a ready StatusWriter.
func Build(plan StatusPlan, timeoutMs int) (StatusWriter, func() error, error) {
	if plan.Endpoint == "" {
		return nil, nil, errors.New("publisher: endpoint required")
	}

	cli, err := pmodbus.Dial(pmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  time.Duration(timeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewStatusWriter(plan, cli)
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}
	return sw, cli.Close, nil
}
