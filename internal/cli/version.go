package cli

import (
	"fmt"
	"io"

	"quickhash/internal/buildinfo"
)

// NewVersionCommand creates the version subcommand.
func NewVersionCommand(out io.Writer) Command {
	return Command{
		name: "version",
		run: func(args []string) error {
			if len(args) > 0 {
				return usageError("version accepts no arguments")
			}

			if _, err := fmt.Fprintln(out, buildinfo.Get().String()); err != nil {
				return fmt.Errorf("write version output: %w", err)
			}

			return nil
		},
	}
}
