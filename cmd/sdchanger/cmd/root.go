// cmd/sdchanger/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/sd-changer/internal/board"
	"github.com/tamzrod/sd-changer/internal/changer"
	"github.com/tamzrod/sd-changer/internal/config"
)

var (
	// Global flags
	cfgPath string
	verbose bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "sdchanger",
	Short: "SD card changer controller",
	Long: `Controls an 8-slot SD card changer: two MCP23017 expanders drive the
per-slot power and select lines and read the card-detect switches.

Examples:
  sdchanger --config board.yaml init        # Drive the baseline (all off)
  sdchanger detect                          # Show which slots hold a card
  sdchanger select 5                        # Route slot 5 to its SDMMC port
  sdchanger power 5 on                      # Power slot 5
  sdchanger serve                           # Run the monitor and status mirror`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "board.yaml", "board config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads, validates and normalizes the board config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// open builds the changer without touching the registers.
func open() (*config.Config, *changer.Changer, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	ch, closeBus, err := board.Build(cfg.Changer, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("board build failed: %w", err)
	}
	return cfg, ch, closeBus, nil
}

// attach opens the changer and adopts the current hardware state.
// The board is not reset.
func attach() (*changer.Changer, func() error, error) {
	_, ch, closeBus, err := open()
	if err != nil {
		return nil, nil, err
	}
	if err := ch.Sync(); err != nil {
		_ = closeBus()
		return nil, nil, fmt.Errorf("sync failed: %w", err)
	}
	return ch, closeBus, nil
}
