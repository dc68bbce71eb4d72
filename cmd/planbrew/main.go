// Package main implements the planbrew CLI: a terminal dashboard over the
// PlanBrew backend, plus login, export, insight, and setup commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planbrew/planbrew/internal/api"
	"github.com/planbrew/planbrew/internal/config"
	"github.com/planbrew/planbrew/internal/logging"
)

var (
	configPath string
	apiURL     string

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "planbrew",
	Short: "Terminal dashboard for PlanBrew activity tracking",
	Long: `planbrew shows what your coding tools logged this week: the activity
feed, weekly stats, and backend-generated insights, navigable week by week.

Sign in once with 'planbrew login'; the session persists until logout.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/planbrew/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL override")
	rootCmd.AddCommand(loginCmd, logoutCmd, dashboardCmd, exportCmd, insightsCmd, setupCmd)
}

// app bundles the dependencies every command wires the same way.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *api.Session
	client  *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}
	session, err := api.NewSession(dir)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(cfg.API.BaseURL, session, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, session: session, client: client}, nil
}

func (a *app) Close() {
	_ = logging.Sync(a.logger)
}

// requireSignIn gates the authenticated commands.
func (a *app) requireSignIn() error {
	if a.session.State() != api.StateSignedIn {
		return fmt.Errorf("not signed in — run 'planbrew login' first")
	}
	return nil
}
