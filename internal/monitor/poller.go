// internal/monitor/poller.go
package monitor

import (
	"errors"
	"time"

	"github.com/tamzrod/sd-changer/internal/changer"
)

// Source abstracts the changer operations needed by the poller.
type Source interface {
	Detect() (changer.Mask, error)
	Sync() error
	Snapshot() changer.State
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string
	Interval time.Duration
}

// Poller is a dumb, clock-driven sampler.
// It never changes power or selection.
type Poller struct {
	cfg Config
	src Source

	// resync is set after a failed cycle; bookkeeping may have drifted
	// from the output banks.
	resync bool
}

// New creates a poller with immutable config.
func New(cfg Config, src Source) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("monitor: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("monitor: source required")
	}
	return &Poller{cfg: cfg, src: src}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() Result {
	res := Result{
		Name: p.cfg.Name,
		At:   time.Now(),
	}

	if p.resync {
		if err := p.src.Sync(); err != nil {
			res.Err = err
			return res
		}
		p.resync = false
	}

	if _, err := p.src.Detect(); err != nil {
		p.resync = true
		res.Err = err
		return res
	}

	// Commit only if every read succeeded
	res.State = p.src.Snapshot()
	return res
}

// Interval returns the tick period.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }
