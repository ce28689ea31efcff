// cmd/sdchanger/cmd/serve.go
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/sd-changer/internal/monitor"
	"github.com/tamzrod/sd-changer/internal/publisher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Initialize the board, then run the monitor and status mirror",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, ch, closeBus, err := open()
	if err != nil {
		return err
	}
	defer closeBus()

	if err := ch.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- monitor ----
	p, err := monitor.New(monitor.Config{
		Name:     cfg.Changer.Name,
		Interval: time.Duration(cfg.Monitor.IntervalMs) * time.Millisecond,
	}, ch)
	if err != nil {
		return err
	}

	// ---- status mirror (optional) ----
	var sw publisher.StatusWriter
	if plan, enabled := publisher.BuildPlan(cfg); enabled {
		w, closeWriter, err := publisher.Build(plan, cfg.Status.TimeoutMs)
		if err != nil {
			return err
		}
		defer closeWriter()
		sw = w
	}

	clog := log.WithField("changer", cfg.Changer.Name)
	clog.WithField("interval", p.Interval()).Info("serving")

	out := make(chan monitor.Result)
	go p.Run(ctx, out)

	orchestrate(ctx, out, sw, clog)

	clog.Info("stopped")
	return nil
}

// orchestrate owns the mirror state and the 1Hz seconds ticker.
// It returns when ctx is done.
func orchestrate(ctx context.Context, in <-chan monitor.Result, sw publisher.StatusWriter, log logrus.FieldLogger) {
	m := publisher.NewMirror()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	publish := func(reason string) {
		if sw == nil {
			return
		}
		if err := sw.WriteStatus(m.Snapshot()); err != nil {
			log.WithError(err).WithField("reason", reason).Warn("status write failed")
		}
	}

	// Full block write on start (identity re-assert).
	publish("start")

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			prevHealth := m.Snapshot().Health
			if !m.Apply(res) {
				continue
			}
			s := m.Snapshot()
			if res.Err != nil {
				log.WithError(res.Err).WithField("code", s.LastErrorCode).Warn("poll failed")
			} else {
				if prevHealth != s.Health {
					log.Info("poll healthy")
				}
				log.WithFields(logrus.Fields{
					"detected": res.State.Detected.String(),
					"powered":  res.State.Powered.String(),
					"selected": int(res.State.Selected),
				}).Debug("state changed")
			}
			publish("poll")

		case <-secTicker.C:
			// Tick 1 Hz while not OK.
			if m.Tick() {
				publish("tick")
			}
		}
	}
}
