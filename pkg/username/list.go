package username

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadList reads one username per line. Blank lines and lines starting
// with '#' are skipped.
func ReadList(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read username list: %w", err)
	}

	return names, nil
}

// ReadFile opens path and parses it with ReadList.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open username list %s: %w", path, err)
	}
	defer f.Close()

	return ReadList(f)
}
