package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecommerce-storefront-platform/internal/models"
)

var (
	loginEmail    string
	loginPassword string
	loginName     string
	loginRegister bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the shop (or sign up with --register)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var user *models.User
		var err error
		if loginRegister {
			user, err = app.auth.Register(ctx, &models.RegisterRequest{
				Name:     loginName,
				Email:    loginEmail,
				Password: loginPassword,
			})
		} else {
			user, err = app.auth.Login(ctx, &models.LoginRequest{
				Email:    loginEmail,
				Password: loginPassword,
			})
		}
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.auth.Logout(cmd.Context())
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := app.auth.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, cart and favorites at a glance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if app.creds.IsAuthenticated() {
			if user, err := app.auth.CurrentUser(ctx); err == nil {
				fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			}
			fmt.Printf("Cart: %d item(s)\n", app.cart.CartCount(ctx))
		} else {
			fmt.Println("Not signed in.")
		}
		fmt.Printf("Favorites: %d product(s)\n", len(app.favorites.List()))

		// Reopen the cart view if it was left open last time
		if app.prefs.CartOpen() {
			fmt.Println()
			return printCart(cmd)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	loginCmd.Flags().StringVarP(&loginName, "name", "n", "", "display name (with --register)")
	loginCmd.Flags().BoolVar(&loginRegister, "register", false, "create a new account")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
