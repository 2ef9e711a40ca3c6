package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the colour mode",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.Close()

	mode := theme.Load(s.KV)
	if len(args) > 0 {
		switch arg := strings.ToLower(args[0]); arg {
		case "toggle":
			mode, err = theme.Toggle(s.KV)
		case string(theme.Light), string(theme.Dark):
			mode = theme.Mode(arg)
			err = theme.Set(s.KV, mode)
		default:
			return fmt.Errorf("unknown mode %q", args[0])
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), mode)
	return nil
}
