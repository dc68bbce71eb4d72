package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeProvider stands in for Google's token endpoint.
func fakeProvider(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","token_type":"Bearer","id_token":"` + idToken + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn_ExchangesCodeForIDToken(t *testing.T) {
	provider := fakeProvider(t, "google-id-token")

	f := NewFlow("cid", "secret", nil)
	f.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  provider.URL + "/auth",
		TokenURL: provider.URL + "/token",
	}

	urls := make(chan string, 1)
	done := make(chan struct{})
	var idToken string
	var signInErr error

	go func() {
		defer close(done)
		idToken, signInErr = f.SignIn(context.Background(), func(u string) { urls <- u })
	}()

	authURL := <-urls
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	q := parsed.Query()
	redirect := q.Get("redirect_uri")
	state := q.Get("state")
	require.NotEmpty(t, redirect)
	require.NotEmpty(t, state)

	// Play the browser: follow the redirect back with a code.
	resp, err := http.Get(redirect + "?state=" + url.QueryEscape(state) + "&code=the-code")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sign-in did not complete")
	}
	require.NoError(t, signInErr)
	assert.Equal(t, "google-id-token", idToken)
}

func TestSignIn_RejectsStateMismatch(t *testing.T) {
	provider := fakeProvider(t, "unused")

	f := NewFlow("cid", "secret", nil)
	f.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  provider.URL + "/auth",
		TokenURL: provider.URL + "/token",
	}

	urls := make(chan string, 1)
	done := make(chan error, 1)

	go func() {
		_, err := f.SignIn(context.Background(), func(u string) { urls <- u })
		done <- err
	}()

	authURL := <-urls
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	redirect := parsed.Query().Get("redirect_uri")

	resp, err := http.Get(redirect + "?state=forged&code=the-code")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "state mismatch")
	case <-time.After(5 * time.Second):
		t.Fatal("sign-in did not fail")
	}
}

func TestSignIn_ContextCancellation(t *testing.T) {
	f := NewFlow("cid", "secret", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		_, err := f.SignIn(ctx, func(string) {})
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sign-in did not observe cancellation")
	}
}
