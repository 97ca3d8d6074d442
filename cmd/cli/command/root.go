package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"movielogger/cmd/cli/authentication"
	"movielogger/cmd/cli/command/client"
)

const defaultAPIURL = "http://localhost:3001"

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "movielogger",
	Short: "movielogger - Movie Logger Command Line Interface",
	Long: `movielogger talks to a Movie Logger API server. Use it to:
- Register and log in
- Browse the local catalog and search TMDB
- Keep a diary of watched movies with ratings and reviews
- Maintain a watchlist

Use "movielogger [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("MOVIELOGGER_API")
	if defaultURL == "" {
		defaultURL = defaultAPIURL
	}
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL (env MOVIELOGGER_API)")

	rootCmd.AddCommand(authCmd, movieCmd, logCmd, watchlistCmd)
}

// publicClient returns a client without credentials.
func publicClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

// authedClient returns a client carrying the stored session token.
func authedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	if creds.APIURL != "" && creds.APIURL != apiURL {
		return nil, fmt.Errorf("logged in to %s, not %s; run 'movielogger auth login --api %s'", creds.APIURL, apiURL, apiURL)
	}
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(creds.Token)
	return httpClient, nil
}
