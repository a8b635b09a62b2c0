// Package cli implements quickhash command-line parsing and commands.
package cli

import (
	"fmt"
	"io"
	"os"

	apperrors "quickhash/internal/errors"
)

// Command represents an executable CLI command.
type Command struct {
	name string
	run  func(args []string) error
}

// Name returns the command name.
func (c Command) Name() string { return c.name }

// RootCommand handles argument parsing for the quickhash CLI.
type RootCommand struct {
	out      io.Writer
	errOut   io.Writer
	commands []Command
	args     []string
}

// NewRootCommand creates the quickhash root command.
func NewRootCommand(out io.Writer, errOut io.Writer) *RootCommand {
	root := &RootCommand{out: out, errOut: errOut}
	root.commands = []Command{
		NewVersionCommand(out),
		{name: "hash", run: root.runHash},
		{name: "algos", run: root.runAlgos},
	}
	return root
}

// SetArgs sets command arguments.
func (r *RootCommand) SetArgs(args []string) { r.args = args }

// Commands returns configured subcommands.
func (r *RootCommand) Commands() []Command { return r.commands }

// Execute parses and runs commands. Arguments that do not name a subcommand
// are treated as a hash run, so `quickhash file1 file2` works the way a
// file-manager launcher would invoke it.
func (r *RootCommand) Execute() error {
	if len(r.args) == 0 {
		return r.printHelp()
	}
	switch r.args[0] {
	case "-h", "--help", "help":
		return r.printHelp()
	case "version":
		return r.commands[0].run(r.args[1:])
	case "hash":
		return r.commands[1].run(r.args[1:])
	case "algos":
		return r.commands[2].run(r.args[1:])
	default:
		return r.commands[1].run(r.args)
	}
}

func (r *RootCommand) printHelp() error {
	const help = "quickhash computes file digests concurrently\n\nUsage:\n  quickhash [command]\n  quickhash [flags] PATH...\n\nAvailable Commands:\n  hash     Hash files and directories (default)\n  algos    List supported digest algorithms\n  version  Print version information\n\nFlags:\n  -h, --help  help for quickhash\n\nUse \"quickhash hash --help\" for hashing flags.\n"
	if _, err := fmt.Fprint(r.out, help); err != nil {
		return fmt.Errorf("write help output: %w", err)
	}
	return nil
}

func usageError(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, apperrors.ErrUsage)...)
}

// NewOSRootCommand creates a command wired to process standard streams.
func NewOSRootCommand() *RootCommand {
	return NewRootCommand(os.Stdout, os.Stderr)
}
