package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ecommerce-storefront-platform/internal/models"
	"ecommerce-storefront-platform/internal/services"
)

var (
	productsCategory string
	productsSort     string
	productsPage     int
	productsPerPage  int
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.catalog.ListProducts(cmd.Context())
		if err != nil {
			return err
		}

		products = services.FilterByCategory(products, productsCategory)
		if productsSort != "" {
			products = services.SortProducts(products, services.SortOrder(productsSort))
		}
		page := services.Paginate(products, productsPage, productsPerPage)

		if len(page) == 0 {
			fmt.Println("No products found.")
			return nil
		}
		for _, p := range page {
			printProductLine(p)
		}
		fmt.Printf("Page %d (%d of %d products)\n", productsPage, len(page), len(products))
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		product, err := app.catalog.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}

		printProductLine(*product)
		if product.About != "" {
			fmt.Println(product.About)
		}
		if stats, err := app.catalog.RatingStats(cmd.Context(), id); err == nil && stats.Count > 0 {
			fmt.Printf("Rating: %.1f (%d ratings)\n", stats.Average, stats.Count)
		}
		if app.favorites.IsFavorite(id) {
			fmt.Println("In your favorites.")
		}
		if app.creds.IsAuthenticated() {
			if mine, err := app.catalog.UserRating(cmd.Context(), id); err == nil {
				fmt.Printf("Your rating: %d\n", mine.Rate)
			}
		}
		return nil
	},
}

var (
	rateComment string
	rateDelete  bool
)

var rateCmd = &cobra.Command{
	Use:   "rate <product-id> [stars]",
	Short: "Rate a product, or remove your rating with --delete",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		if rateDelete {
			mine, err := app.catalog.UserRating(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := app.catalog.DeleteRating(cmd.Context(), mine.ID); err != nil {
				return err
			}
			fmt.Println("Rating removed.")
			return nil
		}

		if len(args) != 2 {
			return fmt.Errorf("stars required (1-5)")
		}
		stars, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid stars %q", args[1])
		}

		rating, err := app.catalog.SubmitRating(cmd.Context(), &models.RatingRequest{
			ProductID: id,
			Rate:      stars,
			Comment:   rateComment,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Rated %d stars.\n", rating.Rate)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := app.catalog.ListCategories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%4d  %s\n", c.ID, c.Title)
		}
		return nil
	},
}

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Show products currently on sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.catalog.LatestSale(cmd.Context())
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No deals right now.")
			return nil
		}
		for _, p := range products {
			fmt.Printf("%4d  %-40s %8.2f  was %.2f\n", p.ID, p.Title, p.SalePrice(), p.Price)
		}
		return nil
	},
}

var topRatedCmd = &cobra.Command{
	Use:   "top-rated",
	Short: "Show the highest rated products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.catalog.TopRated(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range products {
			printProductLine(p)
		}
		return nil
	},
}

func printProductLine(p models.Product) {
	marker := " "
	if p.OnSale() {
		marker = "*"
	}
	fmt.Printf("%4d %s %-40s %8.2f  %s\n", p.ID, marker, p.Title, p.SalePrice(), p.Category)
}

func init() {
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "filter by category")
	productsCmd.Flags().StringVar(&productsSort, "sort", "", "sort order: price-asc, price-desc, newest")
	productsCmd.Flags().IntVar(&productsPage, "page", 1, "page number")
	productsCmd.Flags().IntVar(&productsPerPage, "per-page", 7, "products per page")

	rateCmd.Flags().StringVar(&rateComment, "comment", "", "optional review text")
	rateCmd.Flags().BoolVar(&rateDelete, "delete", false, "remove your rating instead")
}
