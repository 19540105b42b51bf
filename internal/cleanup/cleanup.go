// Package cleanup implements pruning of the dialcoach event log.
package cleanup

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// logRelPath is the event log location under the working directory.
const logRelPath = ".dialcoach/log.jsonl"

// timedEvent is the slice of a log line pruning cares about.
type timedEvent struct {
	Time time.Time `json:"time"`
}

// PruneByAge rewrites the event log keeping only entries newer than
// maxAgeDays. If dryRun is true the log is left untouched; the function only
// counts. Returns the number of pruned entries. A missing log is not an
// error.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) (int, error) {
	path := filepath.Join(dir, logRelPath)
	lines, err := readLines(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var kept []string
	for _, line := range lines {
		var ev timedEvent
		if json.Unmarshal([]byte(line), &ev) != nil {
			// Malformed lines are pruned along with expired ones.
			continue
		}
		if ev.Time.After(cutoff) {
			kept = append(kept, line)
		}
	}

	pruned := len(lines) - len(kept)
	if dryRun || pruned == 0 {
		return pruned, nil
	}
	return pruned, writeLines(path, kept)
}

// PruneKeepRecent truncates the event log to its most recent keep entries.
// Returns the number of pruned entries.
func PruneKeepRecent(dir string, keep int, dryRun bool) (int, error) {
	path := filepath.Join(dir, logRelPath)
	lines, err := readLines(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	if len(lines) <= keep {
		return 0, nil
	}

	pruned := len(lines) - keep
	if dryRun {
		return pruned, nil
	}
	return pruned, writeLines(path, lines[pruned:])
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	return lines, nil
}

func writeLines(path string, lines []string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp log: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing temp log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp log: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing log: %w", err)
	}
	return nil
}
