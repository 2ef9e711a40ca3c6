// Package logtail reads the end of the notesnav log file and renders its
// JSON records for a terminal.
//
// The reader UI owns the terminal while it runs, so the log lives in a file
// (see the logging package). The "notesnav logs" command uses this package
// to show recent records:
//
//	lines, err := logtail.Read(path, 50)
//	if err != nil {
//		return err
//	}
//	return logtail.Format(os.Stdout, lines, false)
//
// Read keeps only the last n lines in memory, so large logs are cheap to
// tail. Records longer than 1 MiB fail the read.
package logtail
