package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rackmap",
		Short: "Track what is stored where in a multi-floor warehouse",
		Long: "rackmap records the floors of a warehouse, the rack positions on each floor " +
			"and the product models stored at every position, and draws floor maps in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return sess.close()
		},
	}

	cmd.PersistentFlags().StringVar(&sess.configDir, "config", ".", "Directory holding .rackmap.yaml and .env")
	cmd.PersistentFlags().StringVar(&sess.dbPath, "db", "", "SQLite database file (overrides config)")
	cmd.PersistentFlags().BoolVarP(&sess.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd(sess))
	cmd.AddCommand(newSetupCmd(sess))
	cmd.AddCommand(newStatusCmd(sess))
	cmd.AddCommand(newFloorCmd(sess))
	cmd.AddCommand(newProductCmd(sess))
	cmd.AddCommand(newSearchCmd(sess))
	cmd.AddCommand(newMapCmd(sess))
	cmd.AddCommand(newSlotCmd(sess))
	cmd.AddCommand(newWatchCmd(sess))
	cmd.AddCommand(newResetCmd(sess))
	cmd.AddCommand(newMCPCmd(sess))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd(&session{})
}

// Execute runs the command line and prints any failure to stderr.
func Execute() error {
	sess := &session{}
	err := execute(newRootCmd(sess), sess)
	if err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
	}
	return err
}

// execute runs root and closes the session afterwards. Cobra skips
// PersistentPostRunE when a command fails, so the close happens here too.
func execute(root *cobra.Command, sess *session) error {
	err := root.Execute()
	if cerr := sess.close(); err == nil {
		err = cerr
	}
	return err
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
