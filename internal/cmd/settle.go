package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gridflow/internal/measure"
)

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Measure every card and apply the heights as corrections",
	Long: `Build a layout, measure each card at its cell width and apply every
differing height to the layout one correction at a time. Prints the refresh
set of each correction and the settled content height.`,
	Example: `
# Settle the demo catalog at 1000pt
gridctl settle

# Settle with the largest accessibility text size and print each correction
gridctl settle --size-category accessibility-extra-extra-extra-large --verbose
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := buildLayout(cmd)
		if err != nil {
			return err
		}
		before := run.layout.ContentSize().Height

		result, err := measure.Settle(run.layout, run.catalog.ItemAt, measure.New(run.settings.SizeCategory))
		if err != nil {
			return fmt.Errorf("failed to settle layout: %w", err)
		}

		out := cmd.OutOrStdout()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			for _, req := range result.Requests {
				fmt.Fprintf(out, "item=%d refreshed=%d delta=%s\n",
					req.ItemsToRefresh[0], len(req.ItemsToRefresh), formatPoints(req.ContentSizeDelta))
			}
		}
		fmt.Fprintf(out, "generation=%d corrections=%d refreshed=%d content_height=%s->%s\n",
			result.Generation, result.Corrections, result.Refreshed,
			formatPoints(before), formatPoints(run.layout.ContentSize().Height))
		return nil
	},
}

func init() {
	addLayoutFlags(settleCmd)
	settleCmd.Flags().BoolP("verbose", "v", false, "Print every correction")
}
