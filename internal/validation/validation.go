// Package validation checks user-supplied inputs before they reach the core.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// OutputFormats are the encodings of the normalized model.
var OutputFormats = []string{"json", "yaml", "yml"}

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("no input file given")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a portfolio export", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	f := strings.ToLower(format)
	for _, known := range OutputFormats {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'yaml'", format)
}
