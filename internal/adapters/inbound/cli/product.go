package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/tui"
	"github.com/abdidvp/rackmap/internal/domain"
)

func newProductCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Record, list and edit stored products",
	}
	cmd.AddCommand(newProductAddCmd(sess))
	cmd.AddCommand(newProductListCmd(sess))
	cmd.AddCommand(newProductUpdateCmd(sess))
	cmd.AddCommand(newProductQuantityCmd(sess))
	cmd.AddCommand(newProductRemoveCmd(sess))
	return cmd
}

func newProductAddCmd(sess *session) *cobra.Command {
	var (
		floor      int
		position   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "add <model> <quantity>",
		Short:   "Store a quantity of a model at a floor position",
		Example: "  rackmap product add B1234 10 --floor 1 --position L1-1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.PlaceProduct(cmd.Context(), args[0], args[1], floor, position)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s ×%d at floor %d %s (id %d)\n",
				p.Model, p.Quantity, p.FloorNumber, p.Position, p.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&floor, "floor", "f", 0, "Floor number")
	cmd.Flags().StringVarP(&position, "position", "p", "", "Position such as L1-1 or R3-2")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the stored product as JSON")
	_ = cmd.MarkFlagRequired("floor")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}

func newProductListCmd(sess *session) *cobra.Command {
	var (
		floor      int
		position   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products, optionally on one floor or position",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if position != "" && floor == 0 {
				return fmt.Errorf("--position needs --floor")
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}

			var (
				products []domain.Product
				title    = "Products"
			)
			switch {
			case position != "":
				if position, err = parsePosition(position); err != nil {
					return err
				}
				products, err = svc.ProductsAt(cmd.Context(), floor, position)
				title = fmt.Sprintf("Floor %d  ·  %s", floor, position)
			case floor != 0:
				products, err = svc.ProductsByFloor(cmd.Context(), floor)
				title = fmt.Sprintf("Floor %d", floor)
			default:
				products, err = svc.Products(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(title, products))
			return nil
		},
	}

	cmd.Flags().IntVarP(&floor, "floor", "f", 0, "Only products on this floor")
	cmd.Flags().StringVarP(&position, "position", "p", "", "Only products at this position (needs --floor)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output products as JSON")

	return cmd
}

func newProductUpdateCmd(sess *session) *cobra.Command {
	var (
		floor    int
		position string
	)

	cmd := &cobra.Command{
		Use:   "update <id> <model> <quantity>",
		Short: "Rewrite a stored product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.EditProduct(cmd.Context(), id, args[1], args[2], floor, position)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d: %s ×%d at floor %d %s\n",
				p.ID, p.Model, p.Quantity, p.FloorNumber, p.Position)
			return nil
		},
	}

	cmd.Flags().IntVarP(&floor, "floor", "f", 0, "Floor number")
	cmd.Flags().StringVarP(&position, "position", "p", "", "Position such as L1-1 or R3-2")
	_ = cmd.MarkFlagRequired("floor")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}

func newProductQuantityCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "qty <id> <quantity>",
		Aliases: []string{"quantity"},
		Short:   "Change the quantity of a stored product",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.ChangeQuantity(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set quantity of product %d to %s\n", id, args[1])
			return nil
		},
	}
}

func newProductRemoveCmd(sess *session) *cobra.Command {
	var (
		floor    int
		position string
		model    string
		all      bool
	)

	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove"},
		Short:   "Delete a product by id, by model at a position, or all with --all",
		Example: "  rackmap product rm 12\n  rackmap product rm --floor 1 --position L1-1 --model B1234",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byPosition := floor != 0 || position != "" || model != ""
			modes := 0
			for _, set := range []bool{len(args) == 1, byPosition, all} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				return fmt.Errorf("give exactly one of: a product id, --floor/--position/--model, or --all")
			}

			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case all:
				if err := svc.DeleteAllProducts(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted all products")
			case byPosition:
				if floor == 0 || position == "" || model == "" {
					return fmt.Errorf("--floor, --position and --model are all required")
				}
				if position, err = parsePosition(position); err != nil {
					return err
				}
				model = domain.FormatModel(model)
				if err := svc.DeleteProductAt(cmd.Context(), floor, position, model); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from floor %d %s\n", model, floor, position)
			default:
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				if err := svc.DeleteProduct(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&floor, "floor", "f", 0, "Floor of the product to delete")
	cmd.Flags().StringVarP(&position, "position", "p", "", "Position of the product to delete")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model of the product to delete")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every product")

	return cmd
}
