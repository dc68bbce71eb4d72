// Package auth runs the Google sign-in flow for a terminal: an
// authorization-code exchange against a loopback redirect listener. The
// result is a Google ID token; trading it for a backend access token is
// the gateway's job, and storing that is the session's.
package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// signInTimeout bounds how long the loopback listener waits for the user
// to finish in the browser.
const signInTimeout = 5 * time.Minute

const callbackPage = `<!doctype html>
<html><body style="font-family: sans-serif; text-align: center; padding-top: 4rem">
<h2>Signed in to PlanBrew</h2>
<p>You can close this tab and return to the terminal.</p>
</body></html>`

// Flow is a configured Google sign-in flow.
type Flow struct {
	oauth  *oauth2.Config
	logger *zap.Logger
}

// NewFlow creates a sign-in flow for the given OAuth client.
func NewFlow(clientID, clientSecret string, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

type callbackResult struct {
	code string
	err  error
}

// SignIn runs the flow end to end: it binds a loopback listener on a
// random port, hands the provider URL to promptURL (the caller shows it
// to the user), waits for the redirect, and exchanges the code for a
// Google ID token.
func (f *Flow) SignIn(ctx context.Context, promptURL func(string)) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to bind loopback listener: %w", err)
	}

	// Copy the config so concurrent flows cannot fight over RedirectURL.
	cfg := *f.oauth
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	state := uuid.NewString()
	results := make(chan callbackResult, 1)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = ln
	e.GET("/callback", func(c echo.Context) error {
		if got := c.QueryParam("state"); got != state {
			results <- callbackResult{err: fmt.Errorf("oauth state mismatch")}
			return c.String(http.StatusBadRequest, "state mismatch")
		}
		if errMsg := c.QueryParam("error"); errMsg != "" {
			results <- callbackResult{err: fmt.Errorf("provider returned error: %s", errMsg)}
			return c.String(http.StatusBadRequest, errMsg)
		}
		results <- callbackResult{code: c.QueryParam("code")}
		return c.HTML(http.StatusOK, callbackPage)
	})

	go func() {
		if err := e.Start(""); err != nil && err != http.ErrServerClosed {
			f.logger.Debug("callback listener stopped", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	ctx, cancel := context.WithTimeout(ctx, signInTimeout)
	defer cancel()

	promptURL(cfg.AuthCodeURL(state))

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return "", fmt.Errorf("sign-in timed out: %w", ctx.Err())
	}
	if res.err != nil {
		return "", res.err
	}

	token, err := cfg.Exchange(ctx, res.code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("provider response carried no ID token")
	}
	return idToken, nil
}
