package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/domain"
)

func newResetCmd(sess *session) *cobra.Command {
	var confirmation string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every floor and product",
		Long: fmt.Sprintf("Wipe the warehouse so setup can run again. Asks for the word %q "+
			"unless --confirm supplies it.", domain.ResetConfirmation),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm") {
				fmt.Fprintf(cmd.OutOrStdout(), "This deletes every floor and product. Type %q to continue: ", domain.ResetConfirmation)
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return domain.Reject(domain.RuleConfirmation, "reset cancelled")
				}
				confirmation = strings.TrimSpace(line)
			}

			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.ResetWarehouse(cmd.Context(), confirmation); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Warehouse reset")
			return nil
		},
	}

	cmd.Flags().StringVar(&confirmation, "confirm", "", fmt.Sprintf("Pass %q to skip the prompt", domain.ResetConfirmation))

	return cmd
}
