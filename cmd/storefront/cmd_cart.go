package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := printCart(cmd); err != nil {
			return err
		}
		app.prefs.SetCartOpen(true)
		return nil
	},
}

var cartHideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Stop showing the cart in `storefront status`",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.prefs.SetCartOpen(false)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id> [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		quantity := 1
		if len(args) == 2 {
			if quantity, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}

		if err := app.cart.AddToCart(cmd.Context(), productID, quantity); err != nil {
			return err
		}
		return printCart(cmd)
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id> <quantity>",
	Short: "Change the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		if err := app.cart.UpdateCartItem(cmd.Context(), itemID, quantity); err != nil {
			return err
		}
		return printCart(cmd)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		if err := app.cart.RemoveFromCart(cmd.Context(), itemID); err != nil {
			return err
		}
		return printCart(cmd)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.cart.ClearCart(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Cart cleared.")
		return nil
	},
}

var cartCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many units are in the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(app.cart.CartCount(cmd.Context()))
		return nil
	},
}

func printCart(cmd *cobra.Command) error {
	if err := app.cart.FetchCart(cmd.Context()); err != nil {
		return err
	}

	state := app.cart.State()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	if len(state.Items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	fmt.Println("Cart:")
	for _, item := range state.Items {
		fmt.Printf("  #%-4d %-40s %3d x %8.2f\n",
			item.ID, item.Product.Title, item.Quantity, item.UnitPrice)
	}
	fmt.Printf("Subtotal: %.2f (%d units)\n", state.Summary.Subtotal, state.Summary.TotalItems)
	return nil
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartHideCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd, cartCountCmd)
}
