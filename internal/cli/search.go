package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every section of the site",
	Long: `Searches the headings and text of all cards, including sections that are not
currently shown, and prints where each match lives.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	s, err := openSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.Searcher.Accepts(query) {
		return fmt.Errorf("query must be at least %d characters", s.Searcher.MinQuery())
	}
	out := cmd.OutOrStdout()
	results := s.Searcher.Search(s.Controller.Document(), query)
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s\n  #%s  %s\n", r.Title, r.Target.Hash(), r.Path)
		if r.Excerpt != "" {
			fmt.Fprintf(out, "  %s\n", r.Excerpt)
		}
	}
	return nil
}
