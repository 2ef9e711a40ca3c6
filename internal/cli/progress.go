package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show reading progress",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	total := progress.Total(s.Controller.Document())
	fmt.Fprintf(out, "Progress: %.0f%%\n", s.Progress.Percent(total))
	fmt.Fprintf(out, "Visited: %s\n", strings.Join(s.Progress.Visited(), ", "))
	for _, path := range s.Progress.Paths() {
		fmt.Fprintf(out, "  %s: %d read\n", path, len(s.Progress.Viewed(path)))
	}
	return nil
}
