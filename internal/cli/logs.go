package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/config"
	"github.com/five82/notesnav/internal/logtail"
)

var (
	logLines int
	logColor bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent log records",
	Long: `Prints the end of the notesnav log file. The reader writes its log there
because it owns the terminal while running.`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "number of records to show (0 for all)")
	logsCmd.Flags().BoolVar(&logColor, "color", false, "colourise levels")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.Log.Path, logLines)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No log records in %s\n", cfg.Log.Path)
		return nil
	}
	return logtail.Format(cmd.OutOrStdout(), lines, logColor)
}
