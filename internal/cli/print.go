package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/notesnav/internal/printer"
)

var printOut string

var printCmd = &cobra.Command{
	Use:   "print [location]",
	Short: "Print a section",
	Long: `Builds a print page for the section at location (a hash or a tab/sub-tab/paper
path) and sends it to the configured print command. With --out the page is
written to a file instead; "-" writes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Download the notes as PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printer.ExportPDF()
	},
}

func init() {
	printCmd.Flags().StringVarP(&printOut, "out", "o", "", "write the print page to this file instead of printing")
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	s, err := openSession(cmd, target)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Printer.Snapshot(s.Controller.ActivePanel())
	if err != nil {
		return err
	}

	switch printOut {
	case "":
		if err := s.Printer.Print(cmd.Context(), doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s\n", location(s), s.Config.Print.Command)
		return nil
	case "-":
		return s.Printer.Write(cmd.OutOrStdout(), doc)
	}

	f, err := os.Create(printOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", printOut, err)
	}
	if err := s.Printer.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", printOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", location(s), printOut)
	return nil
}
