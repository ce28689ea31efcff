// cmd/sdchanger/cmd/ops.go
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sd-changer/internal/changer"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure both expanders and drive the baseline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ch, closeBus, err := open()
		if err != nil {
			return err
		}
		defer closeBus()

		if err := ch.Init(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "baseline: all slots deselected and unpowered")
		return nil
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Sample the card-detect lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, closeBus, err := attach()
		if err != nil {
			return err
		}
		defer closeBus()

		m, err := ch.Detect()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d card(s) present, mask %s\n", m.Count(), m)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <slot>",
	Short: "Route a slot to its SDMMC port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0])
		if err != nil {
			return err
		}

		ch, closeBus, err := attach()
		if err != nil {
			return err
		}
		defer closeBus()

		pins, err := ch.Select(slot)
		if err != nil {
			return err
		}
		loc, _ := changer.Resolve(slot)
		printPins(cmd, slot, loc.Half, pins)
		return nil
	},
}

var deselectCmd = &cobra.Command{
	Use:   "deselect",
	Short: "Deselect every slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, closeBus, err := attach()
		if err != nil {
			return err
		}
		defer closeBus()

		if err := ch.Deselect(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "no slot selected")
		return nil
	},
}

var powerCmd = &cobra.Command{
	Use:       "power <slot> on|off",
	Short:     "Switch a slot's power",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0])
		if err != nil {
			return err
		}
		var on bool
		switch args[1] {
		case "on":
			on = true
		case "off":
		default:
			return fmt.Errorf("power state %q: want on or off", args[1])
		}

		ch, closeBus, err := attach()
		if err != nil {
			return err
		}
		defer closeBus()

		if err := ch.SetPower(slot, on); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "slot %d power %s\n", slot, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd, detectCmd, selectCmd, deselectCmd, powerCmd)
}

func parseSlot(s string) (changer.SlotID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("slot %q: not a number", s)
	}
	slot := changer.SlotID(n)
	if _, err := changer.Resolve(slot); err != nil {
		return 0, err
	}
	return slot, nil
}

func printPins(cmd *cobra.Command, slot changer.SlotID, half changer.PortHalf, p changer.PortPins) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "slot %d selected on %s (%d-bit)\n", slot, half, p.Width)
	fmt.Fprintf(w, "  clk=%d cmd=%d d0=%d", p.Clk, p.Cmd, p.D0)
	if p.Width == 4 {
		fmt.Fprintf(w, " d1=%d d2=%d d3=%d", p.D1, p.D2, p.D3)
	}
	fmt.Fprintln(w)
}
