package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/app"
)

var readCmd = &cobra.Command{
	Use:   "read [hash]",
	Short: "Open the reader",
	Long: `Opens the interactive reader at hash, or at the configured default location.
Press ? inside the reader for keyboard shortcuts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	hash := ""
	if len(args) > 0 {
		hash = args[0]
	}
	return app.Run(cmd.Context(), options(), hash)
}
