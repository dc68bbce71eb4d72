package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planbrew/planbrew/internal/api"
	"github.com/planbrew/planbrew/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in to PlanBrew with your Google account.

A browser URL is printed (and the sign-in completes on a loopback
listener); the resulting session persists under ~/.config/planbrew/
until 'planbrew logout'.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.session.State() == api.StateSignedIn {
		fmt.Fprintln(cmd.OutOrStdout(), "Already signed in. Run 'planbrew logout' to switch accounts.")
		return nil
	}

	if !a.cfg.Google.Configured() {
		return fmt.Errorf("google sign-in is not configured: set google.client_id in the config file or PLANBREW_GOOGLE_CLIENT_ID")
	}

	flow := auth.NewFlow(a.cfg.Google.ClientID, a.cfg.Google.ClientSecret.Value(), a.logger)
	idToken, err := flow.SignIn(cmd.Context(), func(url string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Open this URL in your browser to sign in:")
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "  "+url)
		fmt.Fprintln(cmd.OutOrStdout())
	})
	if err != nil {
		return err
	}

	accessToken, err := a.client.GoogleAuth(cmd.Context(), idToken)
	if err != nil {
		return err
	}
	if err := a.session.Set(accessToken); err != nil {
		return err
	}

	a.logger.Info("signed in")
	fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.session.Clear(); err != nil {
			return err
		}
		a.logger.Info("signed out", zap.String("state", a.session.State().String()))
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}
