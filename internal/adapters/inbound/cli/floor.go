package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
	"github.com/abdidvp/rackmap/internal/domain"
)

func newFloorCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "floor",
		Short: "List and edit floors",
	}
	cmd.AddCommand(newFloorListCmd(sess))
	cmd.AddCommand(newFloorAddCmd(sess))
	cmd.AddCommand(newFloorUpdateCmd(sess))
	cmd.AddCommand(newFloorRemoveCmd(sess))
	return cmd
}

func newFloorListCmd(sess *session) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List floors in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			floors, err := svc.Floors(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, floors)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFloors(floors))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output floors as JSON")

	return cmd
}

func newFloorAddCmd(sess *session) *cobra.Command {
	var left, right int

	cmd := &cobra.Command{
		Use:   "add <number>",
		Short: "Add a floor, replacing any floor with the same number",
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
			f, err := svc.AddFloor(cmd.Context(), number, left, right)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved floor %d (%d left, %d right)\n", f.Number, f.LeftColumns, f.RightColumns)
			return nil
		},
	}

	cmd.Flags().IntVar(&left, "left", 5, "Columns in the left area (1-20)")
	cmd.Flags().IntVar(&right, "right", 5, "Columns in the right area (1-20)")

	return cmd
}

func newFloorUpdateCmd(sess *session) *cobra.Command {
	var left, right int

	cmd := &cobra.Command{
		Use:   "update <number>",
		Short: "Change the column counts of an existing floor",
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
			current, err := svc.Floor(cmd.Context(), number)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.Reject(domain.RuleFloorNotFound, "floor %d does not exist", number)
			}

			f := *current
			if cmd.Flags().Changed("left") {
				f.LeftColumns = left
			}
			if cmd.Flags().Changed("right") {
				f.RightColumns = right
			}
			if err := f.Validate(); err != nil {
				return err
			}
			if err := svc.UpdateFloor(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated floor %d (%d left, %d right)\n", f.Number, f.LeftColumns, f.RightColumns)
			return nil
		},
	}

	cmd.Flags().IntVar(&left, "left", 0, "New column count of the left area (1-20)")
	cmd.Flags().IntVar(&right, "right", 0, "New column count of the right area (1-20)")

	return cmd
}

func newFloorRemoveCmd(sess *session) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "rm [number]",
		Aliases: []string{"remove"},
		Short:   "Delete a floor, or every floor with --all",
		Long:    "Delete a floor. Products recorded on it are kept and show up as unplaced.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give either a floor number or --all")
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			if all {
				if err := svc.DeleteAllFloors(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted all floors")
				return nil
			}

			number, err := parseFloorNumber(args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteFloor(cmd.Context(), number); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted floor %d\n", number)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every floor")

	return cmd
}
