package cli

import (
	"io"

	"minikv/internal/engine"
)

// Run is minikv's CLI entry point. It dispatches args[0] (the subcommand
// name; args excludes the program name) to one of get/set/rm and returns
// the process exit code. Any missing subcommand, missing required
// argument, extra positional, or unknown subcommand prints a message
// containing "USAGE" to stderr and returns a nonzero code (spec.md §6).
func Run(out, errOut io.Writer, args []string, eng engine.Capability) int {
	o := NewIO(out, errOut)

	commands := []*Command{
		GetCmd(eng),
		SetCmd(eng),
		RemoveCmd(eng),
	}

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if len(args) == 0 {
		o.ErrPrintln("USAGE:", usageLine(commands))
		return 2
	}

	cmd, ok := commandMap[args[0]]
	if !ok {
		o.ErrPrintln("USAGE:", usageLine(commands))
		return 2
	}

	return cmd.Run(o, args[1:])
}

func usageLine(commands []*Command) string {
	s := "minikv <"
	for i, cmd := range commands {
		if i > 0 {
			s += "|"
		}
		s += cmd.Name()
	}
	return s + "> ..."
}
