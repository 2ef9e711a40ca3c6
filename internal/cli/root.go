package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/app"
	"github.com/five82/notesnav/internal/logging"
	"github.com/five82/notesnav/internal/nav"
)

var (
	cfgFile    string
	prefsFile  string
	contentLoc string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "notesnav [hash]",
	Short: "Terminal reader for tabbed study-notes sites",
	Long: `notesnav loads a static notes site (a directory, an http(s) base URL or the
built-in sample) and lets you browse its tabs, sub-tabs and papers, search
every section, keep bookmarks and track reading progress.

Run without a subcommand to open the reader, optionally at a location such
as '#group1-group1-prelims'.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRead,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/notesnav/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "preferences file path (default ~/.config/notesnav/prefs.toml)")
	rootCmd.PersistentFlags().StringVarP(&contentLoc, "content", "c", "", "site directory, http(s) URL or \"sample\"")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func options() app.Options {
	return app.Options{
		ConfigPath: cfgFile,
		PrefsPath:  prefsFile,
		Content:    contentLoc,
		Verbose:    verbose,
	}
}

func console(cmd *cobra.Command) zerolog.Logger {
	return logging.Console(cmd.ErrOrStderr(), verbose)
}

// openSession loads the site for a one-shot command and moves to target,
// which is a hash ("#group1-group1-prelims") or a selection path
// ("group1/group1-prelims/paper-1"). An empty target is the default location.
func openSession(cmd *cobra.Command, target string) (*app.Session, error) {
	opts := options()
	opts.AutoSettle = true
	s, err := app.Open(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	if failed := s.Site.Failed; len(failed) > 0 {
		log := console(cmd)
		log.Warn().Strs("fragments", failed).Msg("some sections failed to load")
	}
	if err := moveTo(s, target); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func moveTo(s *app.Session, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		s.Start("")
		return nil
	}
	if !strings.Contains(target, "/") {
		tab, sub := nav.ParseHash(target, s.Controller.Manifest().TabIDs())
		if !s.Controller.Manifest().IsTab(tab) {
			return fmt.Errorf("unknown location %q", target)
		}
		s.Start(target)
		if got := s.Controller.Selection(); !reached(got, nav.Selection{Tab: tab, SubTab: sub}) {
			return fmt.Errorf("unknown location %q", target)
		}
		return nil
	}
	s.Start("")
	want := nav.ParsePath(target)
	s.Controller.Select(want)
	if !reached(s.Controller.Selection(), want) {
		return fmt.Errorf("unknown location %q", target)
	}
	return nil
}

// reached reports whether got honours every level named by want. Levels want
// leaves empty may have been filled with defaults.
func reached(got, want nav.Selection) bool {
	if got.Placeholder || got.Tab != want.Tab {
		return false
	}
	if want.SubTab != "" && got.SubTab != want.SubTab {
		return false
	}
	return want.Paper == "" || got.Paper == want.Paper
}

// location is the breadcrumb of the current selection joined for display.
func location(s *app.Session) string {
	crumbs := s.Controller.Breadcrumb()
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		labels[i] = c.Label
	}
	return strings.Join(labels, " › ")
}
