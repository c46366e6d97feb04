package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/auth"
	"ecommerce-storefront-platform/internal/config"
	"ecommerce-storefront-platform/internal/services"
	"ecommerce-storefront-platform/internal/storage"
)

// application bundles the wired-up client stack shared by every command
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *storage.Store
	creds     *auth.Credentials
	client    *api.Client
	cart      services.CartServiceInterface
	favorites services.FavoritesServiceInterface
	catalog   services.CatalogServiceInterface
	dashboard services.DashboardServiceInterface
	auth      services.AuthServiceInterface
	prefs     *services.Preferences
}

var app *application

func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	a := &application{cfg: cfg, logger: logger, store: store}
	a.creds = auth.NewCredentials(store, logger)

	clientOpts := []api.Option{
		api.WithTokenSource(a.creds),
		api.WithLogger(logger),
		api.WithOnUnauthorized(func() {
			a.creds.Clear()
			if a.cart != nil {
				a.cart.Reset()
			}
			fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
		}),
	}
	if cfg.IsProduction() {
		clientOpts = append(clientOpts, api.WithCache(cfg.Cache.TTL))
	}
	a.client = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, clientOpts...)

	a.cart = services.NewCartService(a.client, a.creds, logger)
	a.favorites = services.NewFavoritesService(store, logger)
	a.catalog = services.NewCatalogService(a.client, logger)
	a.dashboard = services.NewDashboardService(a.client, a.creds, logger)
	a.auth = services.NewAuthService(a.client, a.creds, a.cart, logger)
	a.prefs = services.NewPreferences(store, logger)
	return a, nil
}

func (a *application) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront client for the shop API",
	Long: `storefront browses the product catalog, manages the shopping cart and
favorites, and drives the admin dashboard operations, all against the remote
shop API configured via API_BASE_URL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = newApplication()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.close()
		}
	},
}

func main() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, statusCmd)
	rootCmd.AddCommand(productsCmd, productCmd, categoriesCmd, dealsCmd, topRatedCmd, rateCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
