package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var breadcrumbCmd = &cobra.Command{
	Use:   "breadcrumb [location]",
	Short: "Print the breadcrumb and hash for a location",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBreadcrumb,
}

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of notesnav",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notesnav %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(breadcrumbCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBreadcrumb(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	s, err := openSession(cmd, target)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", location(s), s.Controller.Hash())
	return nil
}
