package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
	"github.com/abdidvp/rackmap/internal/domain"
)

func newSetupCmd(sess *session) *cobra.Command {
	var (
		floors     int
		left       int
		right      int
		layouts    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the floors of a new warehouse",
		Long: "Create floors 1..n of an empty warehouse. Every floor gets --left and --right columns " +
			"unless --layout lists one LEFTxRIGHT pair per floor.",
		Example: "  rackmap setup --floors 3 --left 5 --right 5\n  rackmap setup --layout 5x5,4x6",
		RunE: func(cmd *cobra.Command, args []string) error {
			var plan []domain.FloorLayout
			if len(layouts) > 0 {
				for _, l := range layouts {
					fl, err := domain.ParseFloorLayout(l)
					if err != nil {
						return err
					}
					plan = append(plan, fl)
				}
			} else {
				if floors < 0 {
					floors = 0
				}
				for i := 0; i < floors; i++ {
					plan = append(plan, domain.FloorLayout{LeftColumns: left, RightColumns: right})
				}
			}

			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			created, err := svc.SetupWarehouse(cmd.Context(), plan)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, created)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFloors(created))
			return nil
		},
	}

	cmd.Flags().IntVar(&floors, "floors", 1, "Number of floors (1-10)")
	cmd.Flags().IntVar(&left, "left", 5, "Columns in the left area of every floor (1-20)")
	cmd.Flags().IntVar(&right, "right", 5, "Columns in the right area of every floor (1-20)")
	cmd.Flags().StringSliceVar(&layouts, "layout", nil, "Per-floor LEFTxRIGHT column counts, e.g. 5x5,4x6")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output created floors as JSON")

	return cmd
}
