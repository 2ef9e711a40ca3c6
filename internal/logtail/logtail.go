package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// maxLineSize bounds a single log record.
const maxLineSize = 1024 * 1024

// Read returns the last n lines of the log at path; n <= 0 returns every
// line. A missing file reads as empty.
func Read(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		ring  []string
		start int
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if n <= 0 || len(ring) < n {
			ring = append(ring, line)
			continue
		}
		ring[start] = line
		start = (start + 1) % n
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return append(ring[start:], ring[:start]...), nil
}

// Format writes JSON log records to w in zerolog's console layout. Lines
// that are not JSON records are copied through unchanged.
func Format(w io.Writer, lines []string, color bool) error {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: "2006-01-02 15:04:05"}
	for _, line := range lines {
		trimmed := bytes.TrimSpace([]byte(line))
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '{' {
			if _, err := cw.Write(trimmed); err == nil {
				continue
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
