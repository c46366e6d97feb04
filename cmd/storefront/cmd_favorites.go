package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the local favorites list",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show favorited products",
	RunE: func(cmd *cobra.Command, args []string) error {
		favorites := app.favorites.List()
		if len(favorites) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		for _, p := range favorites {
			printProductLine(p)
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		// Favorites hold a display snapshot, so fetch the product once
		product, err := app.catalog.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := app.favorites.Add(*product); err != nil {
			return err
		}
		fmt.Printf("Added %q to favorites.\n", product.Title)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := app.favorites.Remove(id); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.favorites.Clear(); err != nil {
			return err
		}
		fmt.Println("Favorites cleared.")
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesClearCmd)
}
