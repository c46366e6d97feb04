package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ecommerce-storefront-platform/internal/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Dashboard operations (manager and admin roles)",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.dashboard.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("#%d  %s <%s>  %s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return nil
	},
}

var adminUsersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		u, err := app.dashboard.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s <%s>  %s\n", u.ID, u.Name, u.Email, u.Role)
		return nil
	},
}

var adminUsersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetInt("role")

		u, err := app.dashboard.CreateUser(cmd.Context(), &models.UserCreateRequest{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     models.UserRole(role),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created user #%d %s\n", u.ID, u.Name)
		return nil
	},
}

var adminUsersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetInt("role")

		u, err := app.dashboard.UpdateUser(cmd.Context(), id, &models.UserUpdateRequest{
			Name:  name,
			Email: email,
			Role:  models.UserRole(role),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated user #%d %s\n", u.ID, u.Name)
		return nil
	},
}

var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		if err := app.dashboard.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
}

var adminProductsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := app.dashboard.CreateProduct(cmd.Context(), productRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Created product #%d %s\n", p.ID, p.Title)
		return nil
	},
}

var adminProductsUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		p, err := app.dashboard.UpdateProduct(cmd.Context(), id, productRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Updated product #%d %s\n", p.ID, p.Title)
		return nil
	},
}

var adminProductsDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := app.dashboard.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var adminCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var adminCategoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		image, _ := cmd.Flags().GetString("image")
		c, err := app.dashboard.CreateCategory(cmd.Context(), &models.CategoryCreateRequest{
			Title: title,
			Image: image,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created category #%d %s\n", c.ID, c.Title)
		return nil
	},
}

var adminCategoriesUpdateCmd = &cobra.Command{
	Use:   "update <category-id>",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}
		title, _ := cmd.Flags().GetString("title")
		image, _ := cmd.Flags().GetString("image")
		c, err := app.dashboard.UpdateCategory(cmd.Context(), id, &models.CategoryCreateRequest{
			Title: title,
			Image: image,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated category #%d %s\n", c.ID, c.Title)
		return nil
	},
}

var adminCategoriesDeleteCmd = &cobra.Command{
	Use:   "delete <category-id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}
		if err := app.dashboard.DeleteCategory(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func productRequestFromFlags(cmd *cobra.Command) *models.ProductCreateRequest {
	title, _ := cmd.Flags().GetString("title")
	about, _ := cmd.Flags().GetString("about")
	desc, _ := cmd.Flags().GetString("desc")
	price, _ := cmd.Flags().GetFloat64("price")
	discount, _ := cmd.Flags().GetFloat64("discount")
	category, _ := cmd.Flags().GetString("category")
	images, _ := cmd.Flags().GetStringSlice("image")

	return &models.ProductCreateRequest{
		Title:    title,
		About:    about,
		Desc:     desc,
		Price:    price,
		Discount: discount,
		Category: category,
		Images:   images,
	}
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "product title")
	cmd.Flags().String("about", "", "short blurb")
	cmd.Flags().String("desc", "", "full description")
	cmd.Flags().Float64("price", 0, "list price")
	cmd.Flags().Float64("discount", 0, "amount off the list price")
	cmd.Flags().String("category", "", "category title")
	cmd.Flags().StringSlice("image", nil, "image URL (repeatable)")
}

func init() {
	adminUsersCreateCmd.Flags().String("name", "", "full name")
	adminUsersCreateCmd.Flags().String("email", "", "email address")
	adminUsersCreateCmd.Flags().String("password", "", "initial password")
	adminUsersCreateCmd.Flags().Int("role", int(models.RoleUser), "role code")
	adminUsersCreateCmd.MarkFlagRequired("name")
	adminUsersCreateCmd.MarkFlagRequired("email")
	adminUsersCreateCmd.MarkFlagRequired("password")

	adminUsersUpdateCmd.Flags().String("name", "", "full name")
	adminUsersUpdateCmd.Flags().String("email", "", "email address")
	adminUsersUpdateCmd.Flags().Int("role", 0, "role code")

	addProductFlags(adminProductsCreateCmd)
	adminProductsCreateCmd.MarkFlagRequired("title")
	adminProductsCreateCmd.MarkFlagRequired("price")
	adminProductsCreateCmd.MarkFlagRequired("category")
	addProductFlags(adminProductsUpdateCmd)

	adminCategoriesCreateCmd.Flags().String("title", "", "category title")
	adminCategoriesCreateCmd.Flags().String("image", "", "image URL")
	adminCategoriesCreateCmd.MarkFlagRequired("title")
	adminCategoriesUpdateCmd.Flags().String("title", "", "category title")
	adminCategoriesUpdateCmd.Flags().String("image", "", "image URL")

	adminUsersCmd.AddCommand(adminUsersListCmd, adminUsersGetCmd, adminUsersCreateCmd, adminUsersUpdateCmd, adminUsersDeleteCmd)
	adminProductsCmd.AddCommand(adminProductsCreateCmd, adminProductsUpdateCmd, adminProductsDeleteCmd)
	adminCategoriesCmd.AddCommand(adminCategoriesCreateCmd, adminCategoriesUpdateCmd, adminCategoriesDeleteCmd)
	adminCmd.AddCommand(adminUsersCmd, adminProductsCmd, adminCategoriesCmd)
}
