package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Load reads and parses an export document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return &doc, nil
}

// Locate finds the most recently modified file matching pattern in the
// working directory, falling back to fallbackDir when the working directory
// has no match.
func Locate(pattern, fallbackDir string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad export pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 && fallbackDir != "" {
		matches, err = filepath.Glob(filepath.Join(fallbackDir, pattern))
		if err != nil {
			return "", fmt.Errorf("bad export pattern %q: %w", pattern, err)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no export files matching %q", pattern)
	}

	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no readable export files matching %q", pattern)
	}
	return newest, nil
}
