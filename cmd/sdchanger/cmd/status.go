// cmd/sdchanger/cmd/status.go
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sd-changer/internal/changer"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show detected, powered and selected slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, closeBus, err := attach()
		if err != nil {
			return err
		}
		defer closeBus()

		if _, err := ch.Detect(); err != nil {
			return err
		}
		st := ch.Snapshot()

		if statusJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newStatusView(st))
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "slot  card  power  selected\n")
		for s := changer.SlotID(0); s < changer.SlotCount; s++ {
			fmt.Fprintf(w, "%4d  %-4s  %-5s  %s\n", s,
				yesNo(st.Detected.Has(s)), yesNo(st.Powered.Has(s)), yesNo(st.Selected == s))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print as JSON")
}

type statusView struct {
	Detected []int `json:"detected"`
	Powered  []int `json:"powered"`
	Selected *int  `json:"selected"`
	Count    int   `json:"count"`
}

func newStatusView(st changer.State) statusView {
	v := statusView{
		Detected: []int{},
		Powered:  []int{},
		Count:    st.Detected.Count(),
	}
	for s := changer.SlotID(0); s < changer.SlotCount; s++ {
		if st.Detected.Has(s) {
			v.Detected = append(v.Detected, int(s))
		}
		if st.Powered.Has(s) {
			v.Powered = append(v.Powered, int(s))
		}
	}
	if st.Selected != changer.NoSlot {
		sel := int(st.Selected)
		v.Selected = &sel
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
