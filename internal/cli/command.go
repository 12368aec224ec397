package cli

import (
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI subcommand with unified flag parsing.
type Command struct {
	// Flags defines command-specific flags, if any.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after the program name.
	// The command name is its first word, e.g. "get <KEY>".
	Usage string

	// Short is a one-line description.
	Short string

	// Exec runs the command after flags are parsed and returns the process
	// exit code. A wrong argument count is handled inside Exec itself: it
	// prints the USAGE line to stderr and returns a nonzero code.
	Exec func(o *IO, args []string) (exitCode int)
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// Run parses flags, if any, and executes the command, returning the
// process exit code.
func (c *Command) Run(o *IO, args []string) int {
	if c.Flags != nil {
		c.Flags.SetOutput(&strings.Builder{})
		if err := c.Flags.Parse(args); err != nil {
			o.ErrPrintln("USAGE:", c.Usage)
			return 2
		}
		args = c.Flags.Args()
	}

	return c.Exec(o, args)
}
