package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Simnol22/paperoni/internal/paper"
	"github.com/Simnol22/paperoni/internal/semscholar"
)

// Constants for output formatting.
const (
	// Title truncation length in human-readable summaries.
	SummaryTitleMaxLen = 70
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputJSONCompact writes a value as compact JSON to stdout. Streamed
// results use one line per record.
func outputJSONCompact(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithQueryError maps a core error to its exit code and exits.
func exitWithQueryError(err error) {
	switch {
	case semscholar.IsUsageError(err):
		exitWithError(ExitUsageError, "%v", err)
	case semscholar.IsQueryError(err):
		exitWithError(ExitQueryError, "%v", err)
	case semscholar.IsRecordError(err):
		exitWithError(ExitDataError, "%v", err)
	default:
		exitWithError(ExitError, "%v", err)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printPaperHuman prints a one-paper summary in human-readable format.
func printPaperHuman(num int, p paper.Paper) {
	fmt.Printf("[%d] %s\n", num, truncateString(p.Title, SummaryTitleMaxLen))
	if len(p.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(p.Authors, 3))
	}
	if len(p.Releases) > 0 {
		r := p.Releases[0]
		line := string(r.Venue.Type)
		if r.Venue.Name != "" {
			line = r.Venue.Name
		}
		if date := r.Date.String(); date != "" {
			line += ", " + date
		}
		fmt.Printf("    %s (%d citations)\n", line, p.CitationCount)
	}
	fmt.Println()
}

// printAuthorHuman prints a one-author summary in human-readable format.
func printAuthorHuman(num int, a paper.Author) {
	fmt.Printf("[%d] %s\n", num, a.Name)
	if len(a.Aliases) > 0 {
		fmt.Printf("    also: %s\n", strings.Join(a.Aliases, ", "))
	}
	for _, l := range a.Links {
		fmt.Printf("    %s: %s\n", l.Type, l.Link)
	}
	fmt.Println()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []paper.Author, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
