package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakePrompter struct {
	answer string
	asked  int
}

func (p *fakePrompter) Ask(context.Context, string) (string, error) {
	p.asked++
	return p.answer, nil
}

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "code-123" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"token_type":    "Bearer",
			"refresh_token": "refresh-1",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthenticator(srv *httptest.Server, path string, p Prompter) *Authenticator {
	return NewAuthenticator("id", "secret", path, p, nil,
		WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}),
		WithOutput(io.Discard))
}

func TestAuthenticate_ExchangesCodeAndCachesToken(t *testing.T) {
	srv := newTokenServer(t)
	path := filepath.Join(t.TempDir(), "token.json")
	prompt := &fakePrompter{answer: " code-123\n"}

	ts, err := newTestAuthenticator(srv, path, prompt).Authenticate(context.Background())
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "access-1", tok.AccessToken)
	assert.Equal(t, 1, prompt.asked)

	cached, err := readToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", cached.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAuthenticate_UsesCachedToken(t *testing.T) {
	srv := newTokenServer(t)
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, writeToken(path, &oauth2.Token{
		AccessToken:  "cached",
		RefreshToken: "refresh-0",
		Expiry:       time.Now().Add(time.Hour),
	}))
	prompt := &fakePrompter{}

	ts, err := newTestAuthenticator(srv, path, prompt).Authenticate(context.Background())
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "cached", tok.AccessToken)
	assert.Zero(t, prompt.asked)
}

func TestAuthenticate_ExpiredWithoutRefreshAsksAgain(t *testing.T) {
	srv := newTokenServer(t)
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, writeToken(path, &oauth2.Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	}))
	prompt := &fakePrompter{answer: "code-123"}

	_, err := newTestAuthenticator(srv, path, prompt).Authenticate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, prompt.asked)
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	a := NewAuthenticator("", "", filepath.Join(t.TempDir(), "t.json"), &fakePrompter{}, nil)

	_, err := a.Authenticate(context.Background())
	assert.Error(t, err)
}

func TestAuthenticate_BadCode(t *testing.T) {
	srv := newTokenServer(t)
	path := filepath.Join(t.TempDir(), "token.json")

	_, err := newTestAuthenticator(srv, path, &fakePrompter{answer: "wrong"}).Authenticate(context.Background())

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
