package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"movielogger/cmd/cli/authentication"
)

func init() {
	color.NoColor = true
}

func newIdentityCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addIdentityFlags(cmd)
	_ = cmd.Flags().Parse(args)
	return cmd
}

func TestIdentityFromFlags(t *testing.T) {
	identity, err := identityFromFlags(newIdentityCmd("--tmdb-id", "550", "--title", "Fight Club", "--year", "1999"))
	require.NoError(t, err)
	require.NotNil(t, identity.TMDBID)
	assert.Equal(t, int64(550), *identity.TMDBID)
	assert.Nil(t, identity.MovieID)
	assert.Equal(t, "Fight Club", identity.Title)
	assert.Equal(t, 1999, *identity.Year)
	assert.Nil(t, identity.Director)

	identity, err = identityFromFlags(newIdentityCmd("--movie-id", "3", "--director", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), *identity.MovieID)
	require.NotNil(t, identity.Director)
	assert.Equal(t, "", *identity.Director)

	identity, err = identityFromFlags(newIdentityCmd("--title", "Heat"))
	assert.ErrorIs(t, err, errNoIdentity)
	assert.Equal(t, "Heat", identity.Title)
}

func TestFormatting(t *testing.T) {
	year := 1999
	rating := 9
	assert.Equal(t, "Fight Club (1999)", titleWithYear("Fight Club", &year))
	assert.Equal(t, "Heat", titleWithYear("Heat", nil))
	assert.Equal(t, "9/10", ratingLabel(&rating))
	assert.Equal(t, "unrated", ratingLabel(nil))
}

// runCLI executes the root command against srv with a fresh output buffer.
func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--api", srv.URL))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoginThenLogMovie(t *testing.T) {
	keyring.MockInit()

	var logged map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"message":"Login successful","token":"jwt","user":{"id":"u1","username":"alice"}}`))
		case "/user-movies/log":
			if r.Header.Get("Authorization") != "Bearer jwt" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&logged))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"Movie logged successfully","log_id":7}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "log", "add", "--tmdb-id", "550", "--title", "Fight Club", "--date", "2024-01-15")
	assert.ErrorIs(t, err, authentication.ErrNotLoggedIn)

	out, err := runCLI(t, srv, "auth", "login", "-e", "alice@example.com", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	creds, err := authentication.GetTokens()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, creds.APIURL)

	out, err = runCLI(t, srv, "log", "add", "--tmdb-id", "550", "--title", "Fight Club", "--date", "2024-01-15", "--rating", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged (entry 7)")
	assert.Equal(t, float64(550), logged["tmdb_id"])
	assert.Equal(t, float64(9), logged["rating"])
	assert.Equal(t, "2024-01-15", logged["watched_date"])
	assert.NotContains(t, logged, "review")
}
