package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"movielogger/cmd/cli/dto"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Movie diary commands",
	Long:  `Record watched movies with an optional 0-10 rating and review. Logging a movie again updates the entry.`,
}

var listLogCmd = &cobra.Command{
	Use:   "list",
	Short: "List your logged movies, most recently watched first",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		logs, err := httpClient.ListLogs()
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(logs) == 0 {
			fmt.Fprintln(out, "Your diary is empty.")
			return nil
		}
		for _, l := range logs {
			fmt.Fprintf(out, "%s %d  %s  %s\n", heading("#"), l.ID, l.WatchedDate, titleWithYear(l.Title, l.Year))
			fmt.Fprintf(out, "Rating: %s\n", ratingLabel(l.Rating))
			if l.Review != nil {
				fmt.Fprintf(out, "Review: %s\n", *l.Review)
			}
			separator(out)
		}
		return nil
	},
}

var addLogCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a movie as watched",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := identityFromFlags(cmd)
		if err != nil {
			return err
		}

		req := dto.LogMovieRequest{MovieIdentity: identity}
		req.WatchedDate, _ = cmd.Flags().GetString("date")
		if req.WatchedDate == "" {
			req.WatchedDate = time.Now().Format(time.DateOnly)
		}
		if cmd.Flags().Changed("rating") {
			rating, _ := cmd.Flags().GetInt("rating")
			req.Rating = &rating
		}
		req.Review = optionalString(cmd, "review")

		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		response, created, err := httpClient.LogMovie(&req)
		if err != nil {
			return fmt.Errorf("failed to log movie: %w", err)
		}

		if created {
			printSuccess(cmd.OutOrStdout(), "Logged (entry %d)", response.LogID)
		} else {
			printSuccess(cmd.OutOrStdout(), "Updated entry %d", response.LogID)
		}
		return nil
	},
}

var deleteLogCmd = &cobra.Command{
	Use:   "delete [log-id]",
	Short: "Delete one of your diary entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log ID: %w", err)
		}
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.DeleteLog(id); err != nil {
			return fmt.Errorf("failed to delete log: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Deleted entry %d", id)
		return nil
	},
}

func init() {
	logCmd.AddCommand(listLogCmd, addLogCmd, deleteLogCmd)

	addIdentityFlags(addLogCmd)
	addLogCmd.Flags().StringP("date", "d", "", "Watched date YYYY-MM-DD (default today)")
	addLogCmd.Flags().IntP("rating", "r", 0, "Rating from 0 to 10")
	addLogCmd.Flags().String("review", "", "Review text")
}
