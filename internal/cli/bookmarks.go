package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/bookmarks"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "List and edit bookmarks",
	Args:    cobra.NoArgs,
	RunE:    runBookmarksList,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksList,
}

var bookmarksToggleCmd = &cobra.Command{
	Use:   "toggle <location>",
	Short: "Bookmark a location, or remove its bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksToggle,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a bookmark by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksRemove,
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksToggleCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.Bookmarks.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No bookmarks yet.")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(out, "%s\n  #%s  %s  %s\n", b.Title, b.Selection().Hash(), humanize.Time(b.Timestamp), b.ID)
	}
	return nil
}

func runBookmarksToggle(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	sel := s.Controller.Selection()
	if sel.Placeholder {
		return errors.New("nothing to bookmark at " + args[0])
	}
	title := bookmarks.Title(s.Controller.Breadcrumb())
	added, err := s.Bookmarks.Toggle(sel.Path(), title)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", title)
	}
	return nil
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.Close()

	removed, err := s.Bookmarks.Remove(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no bookmark with id %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Bookmark removed")
	return nil
}
