// Package shared provides common utility functions used across
// multiple packages in the runtime-builder codebase.
package shared

import (
	"fmt"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// JoinFlags joins flag fragments with single spaces, skipping blanks,
// so RUSTFLAGS-style variables can be merged safely.
func JoinFlags(parts ...string) string {
	var filled []string
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filled = append(filled, strings.TrimSpace(part))
	}
	return strings.Join(filled, " ")
}
