package command

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	muted   = color.New(color.FgHiBlack).SprintFunc()
	stars   = color.New(color.FgYellow).SprintFunc()
)

func printError(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, success("✓"), fmt.Sprintf(format, args...))
}

func separator(w io.Writer) {
	fmt.Fprintln(w, muted(strings.Repeat("-", 50)))
}

// titleWithYear renders "Title (1999)" or just the title.
func titleWithYear(title string, year *int) string {
	if year == nil {
		return title
	}
	return fmt.Sprintf("%s (%d)", title, *year)
}

// ratingLabel renders a 0-10 rating, or "unrated".
func ratingLabel(rating *int) string {
	if rating == nil {
		return muted("unrated")
	}
	return stars(strconv.Itoa(*rating) + "/10")
}
