package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
	"github.com/abdidvp/rackmap/internal/domain"
)

func newSearchCmd(sess *session) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <model>",
		Short: "Find every position holding a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			products, err := svc.SearchByModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, products)
			}
			title := "Search " + domain.FormatModel(args[0])
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(title, products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output matches as JSON")

	return cmd
}

func newMapCmd(sess *session) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "map <floor>",
		Short: "Draw the rack grid of a floor with what each slot holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseFloorNumber(args[0])
			if err != nil {
				return err
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			m, err := svc.FloorMap(cmd.Context(), number)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, m)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFloorMap(m))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the floor map as JSON")

	return cmd
}

func newSlotCmd(sess *session) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "slot <floor> <position>",
		Short: "Show the products stored at one position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseFloorNumber(args[0])
			if err != nil {
				return err
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			slot, err := svc.Slot(cmd.Context(), number, args[1])
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, slot)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSlot(number, slot))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the slot as JSON")

	return cmd
}
