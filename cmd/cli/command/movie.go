package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"movielogger/cmd/cli/dto"
)

var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Movie catalog commands",
	Long:  `Browse the local catalog, search TMDB and add movies.`,
}

var listMovieCmd = &cobra.Command{
	Use:   "list",
	Short: "List the local catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := publicClient().ListMovies()
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}
		printMovies(cmd.OutOrStdout(), movies)
		return nil
	},
}

var getMovieCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a local movie, or a TMDB movie with tmdb-<id>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if raw, ok := strings.CutPrefix(args[0], "tmdb-"); ok {
			tmdbID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid TMDB id: %w", err)
			}
			movie, err := publicClient().GetTMDBMovie(tmdbID)
			if err != nil {
				return fmt.Errorf("failed to get movie: %w", err)
			}
			printTMDBMovie(out, *movie, true)
			return nil
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie ID: %w", err)
		}
		movie, err := publicClient().GetMovie(id)
		if err != nil {
			return fmt.Errorf("failed to get movie: %w", err)
		}
		printMovies(out, []dto.Movie{*movie})
		return nil
	},
}

var searchMovieCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the local catalog by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := publicClient().SearchMovies(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		printMovies(cmd.OutOrStdout(), movies)
		return nil
	},
}

var tmdbMovieCmd = &cobra.Command{
	Use:   "tmdb [query]",
	Short: "Search TMDB by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := publicClient().SearchTMDB(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("TMDB search failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(movies) == 0 {
			fmt.Fprintln(out, "No movies found.")
			return nil
		}
		fmt.Fprintf(out, "Found %d movies:\n\n", len(movies))
		for _, m := range movies {
			printTMDBMovie(out, m, false)
		}
		return nil
	},
}

var addMovieCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie to the local catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := identityFromFlags(cmd)
		if err != nil && !errors.Is(err, errNoIdentity) {
			return err
		}
		if identity.Title == "" {
			return errors.New("--title is required")
		}

		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		response, created, err := httpClient.CreateMovie(&dto.CreateMovieRequest{
			Title:       identity.Title,
			Year:        identity.Year,
			Director:    identity.Director,
			PosterURL:   identity.PosterURL,
			BackdropURL: identity.BackdropURL,
			TMDBID:      identity.TMDBID,
		})
		if err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}

		if created {
			printSuccess(cmd.OutOrStdout(), "Added %s (id %d)", titleWithYear(response.Movie.Title, response.Movie.Year), response.Movie.ID)
		} else {
			printSuccess(cmd.OutOrStdout(), "%s is already in the catalog (id %d)", response.Movie.Title, response.Movie.ID)
		}
		return nil
	},
}

var errNoIdentity = errors.New("either --movie-id or --tmdb-id is required")

// addIdentityFlags registers the flags identityFromFlags reads.
func addIdentityFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("movie-id", 0, "Local movie id")
	cmd.Flags().Int64("tmdb-id", 0, "TMDB movie id")
	cmd.Flags().StringP("title", "t", "", "Movie title (needed when the movie is new)")
	cmd.Flags().Int("year", 0, "Release year")
	cmd.Flags().String("director", "", "Director")
	cmd.Flags().String("poster-url", "", "Poster image URL")
	cmd.Flags().String("backdrop-url", "", "Backdrop image URL")
}

// identityFromFlags builds a MovieIdentity from the flags set on cmd.
// It returns errNoIdentity, along with the metadata, when neither id is set.
func identityFromFlags(cmd *cobra.Command) (dto.MovieIdentity, error) {
	flags := cmd.Flags()
	var identity dto.MovieIdentity

	if id, _ := flags.GetInt64("movie-id"); id > 0 {
		identity.MovieID = &id
	}
	if id, _ := flags.GetInt64("tmdb-id"); id > 0 {
		identity.TMDBID = &id
	}
	identity.Title, _ = flags.GetString("title")
	if year, _ := flags.GetInt("year"); year > 0 {
		identity.Year = &year
	}
	identity.Director = optionalString(cmd, "director")
	identity.PosterURL = optionalString(cmd, "poster-url")
	identity.BackdropURL = optionalString(cmd, "backdrop-url")

	if identity.MovieID == nil && identity.TMDBID == nil {
		return identity, errNoIdentity
	}
	return identity, nil
}

func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func printMovies(out io.Writer, movies []dto.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies found.")
		return
	}
	for _, m := range movies {
		fmt.Fprintf(out, "%s %d\n", heading("ID:"), m.ID)
		fmt.Fprintf(out, "%s %s\n", heading("Title:"), titleWithYear(m.Title, m.Year))
		if m.Director != nil {
			fmt.Fprintf(out, "Director: %s\n", *m.Director)
		}
		if m.TMDBID != nil {
			fmt.Fprintf(out, "TMDB: %d\n", *m.TMDBID)
		}
		separator(out)
	}
}

func printTMDBMovie(out io.Writer, m dto.TMDBMovie, details bool) {
	fmt.Fprintf(out, "%s %d\n", heading("TMDB:"), m.TMDBID)
	fmt.Fprintf(out, "%s %s\n", heading("Title:"), titleWithYear(m.Title, m.Year))
	if details {
		if m.Director != nil {
			fmt.Fprintf(out, "Director: %s\n", *m.Director)
		}
		if m.Runtime != nil {
			fmt.Fprintf(out, "Runtime: %d min\n", *m.Runtime)
		}
		if m.Genres != "" {
			fmt.Fprintf(out, "Genres: %s\n", m.Genres)
		}
		if m.Overview != "" {
			fmt.Fprintf(out, "\n%s\n", m.Overview)
		}
	}
	separator(out)
}

func init() {
	movieCmd.AddCommand(listMovieCmd, getMovieCmd, searchMovieCmd, tmdbMovieCmd, addMovieCmd)
	addIdentityFlags(addMovieCmd)
}
