package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/domain"
)

func newWatchCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live snapshots as JSON lines",
		Long: "Print the current result as one JSON line, then a fresh full snapshot after every " +
			"change, until interrupted.",
	}
	cmd.AddCommand(newWatchFloorsCmd(sess))
	cmd.AddCommand(newWatchProductsCmd(sess))
	return cmd
}

func newWatchFloorsCmd(sess *session) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "floors",
		Short: "Stream the floor list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := watchContext(cmd)
			defer stop()

			svc, err := sess.service(ctx)
			if err != nil {
				return err
			}
			ch, err := svc.WatchFloors(ctx)
			if err != nil {
				return err
			}
			return stream(cmd, ch, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many snapshots (0 streams until interrupted)")

	return cmd
}

func newWatchProductsCmd(sess *session) *cobra.Command {
	var (
		filter domain.ProductFilter
		count  int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Stream products, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := watchContext(cmd)
			defer stop()

			if filter.Model != "" {
				filter.Model = domain.FormatModel(filter.Model)
			}
			if filter.Position != "" {
				pos, err := parsePosition(filter.Position)
				if err != nil {
					return err
				}
				filter.Position = pos
			}

			svc, err := sess.service(ctx)
			if err != nil {
				return err
			}
			ch, err := svc.WatchProducts(ctx, filter)
			if err != nil {
				return err
			}
			return stream(cmd, ch, count)
		},
	}

	cmd.Flags().StringVarP(&filter.Model, "model", "m", "", "Only this model")
	cmd.Flags().IntVarP(&filter.FloorNumber, "floor", "f", 0, "Only this floor")
	cmd.Flags().StringVarP(&filter.Position, "position", "p", "", "Only this position")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many snapshots (0 streams until interrupted)")

	return cmd
}

func watchContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// stream writes each snapshot as one JSON line until ch closes or count
// snapshots have been written.
func stream[T any](cmd *cobra.Command, ch <-chan []T, count int) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	written := 0
	for snap := range ch {
		if err := enc.Encode(snap); err != nil {
			return err
		}
		written++
		if count > 0 && written >= count {
			return nil
		}
	}
	return nil
}
