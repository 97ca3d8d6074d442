package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Watchlist commands",
}

var listWatchlistCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your watchlist, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		entries, err := httpClient.ListWatchlist()
		if err != nil {
			return fmt.Errorf("failed to list watchlist: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Your watchlist is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s %d  %s  %s\n", heading("#"), e.ID, titleWithYear(e.Title, e.Year),
				muted("added "+e.AddedAt.Format("2006-01-02")))
		}
		return nil
	},
}

var addWatchlistCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie to your watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := identityFromFlags(cmd)
		if err != nil {
			return err
		}
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		response, added, err := httpClient.AddToWatchlist(&identity)
		if err != nil {
			return fmt.Errorf("failed to add to watchlist: %w", err)
		}

		if added {
			printSuccess(cmd.OutOrStdout(), "Added to watchlist (entry %d)", response.WatchlistID)
		} else {
			printSuccess(cmd.OutOrStdout(), "Already in watchlist (entry %d)", response.WatchlistID)
		}
		return nil
	},
}

var removeWatchlistCmd = &cobra.Command{
	Use:   "remove [entry-id]",
	Short: "Remove an entry from your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid watchlist entry ID: %w", err)
		}
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.RemoveFromWatchlist(id); err != nil {
			return fmt.Errorf("failed to remove from watchlist: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Removed entry %d", id)
		return nil
	},
}

func init() {
	watchlistCmd.AddCommand(listWatchlistCmd, addWatchlistCmd, removeWatchlistCmd)
	addIdentityFlags(addWatchlistCmd)
}
