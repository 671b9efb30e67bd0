package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
)

func newStatusCmd(sess *session) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the warehouse is set up and what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			st, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, st)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStatus(st))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
