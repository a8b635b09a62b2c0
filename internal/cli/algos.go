package cli

import (
	"fmt"

	"quickhash/internal/digest"
)

// runAlgos prints the supported algorithm set, one name per line, so shell
// completion and scripts can consume it.
func (r *RootCommand) runAlgos(args []string) error {
	if len(args) > 0 {
		return usageError("algos accepts no arguments")
	}
	for _, name := range digest.Supported() {
		line := name
		if name == digest.DefaultAlgorithm {
			line += " (default)"
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return fmt.Errorf("write algorithm list: %w", err)
		}
	}
	return nil
}
