package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteOutputs appends the run results as key=value lines to the hosting
// runtime's outputs file. A missing path disables reporting.
func (s Summary) WriteOutputs(path string) error {
	if path == "" {
		return nil
	}

	var numbers []string
	for _, c := range s.Created {
		if c.Number > 0 {
			numbers = append(numbers, strconv.Itoa(c.Number))
		}
	}

	lines := []string{
		"changed_files=" + strings.Join(s.ChangedPaths, ","),
		"changed_count=" + strconv.Itoa(len(s.ChangedPaths)),
		"created_issues=" + strings.Join(numbers, ","),
		"created_count=" + strconv.Itoa(len(numbers)),
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outputs file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	return nil
}
