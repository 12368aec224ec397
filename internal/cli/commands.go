package cli

import (
	flag "github.com/spf13/pflag"

	"minikv/internal/engine"
	minikverrors "minikv/pkg/errors"
)

// GetCmd returns the "get <KEY> [--default VALUE]" command: prints the
// value on stdout, or the literal line "Key not found" if the key is
// absent, both exiting 0 (spec.md §6). "--default" is a supplement beyond
// spec.md's base contract (SPEC_FULL.md "Supplemented features"): when
// given, it is printed instead of "Key not found" on a miss.
func GetCmd(eng engine.Capability) *Command {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	defaultValue := fs.String("default", "", `value to print instead of "Key not found" when the key is absent`)

	return &Command{
		Flags: fs,
		Usage: "get <KEY> [--default VALUE]",
		Short: "Get the value for a key",
		Exec: func(o *IO, args []string) int {
			if len(args) != 1 {
				o.ErrPrintln("USAGE: get <KEY> [--default VALUE]")
				return 2
			}

			value, ok, err := eng.Get(args[0])
			if err != nil {
				o.ErrPrintln("error:", err)
				return 1
			}
			if !ok {
				if fs.Changed("default") {
					o.Println(*defaultValue)
					return 0
				}
				o.Println("Key not found")
				return 0
			}

			o.Println(value)
			return 0
		},
	}
}

// SetCmd returns the "set <KEY> <VALUE>" command: no stdout on success
// (spec.md §6).
func SetCmd(eng engine.Capability) *Command {
	return &Command{
		Usage: "set <KEY> <VALUE>",
		Short: "Set the value for a key",
		Exec: func(o *IO, args []string) int {
			if len(args) != 2 {
				o.ErrPrintln("USAGE: set <KEY> <VALUE>")
				return 2
			}

			if err := eng.Set(args[0], args[1]); err != nil {
				o.ErrPrintln("error:", err)
				return 1
			}

			return 0
		},
	}
}

// RemoveCmd returns the "rm <KEY>" command: prints "Key not found" on
// stdout and exits nonzero if the key is absent; no stdout on success
// (spec.md §6).
func RemoveCmd(eng engine.Capability) *Command {
	return &Command{
		Usage: "rm <KEY>",
		Short: "Remove a key",
		Exec: func(o *IO, args []string) int {
			if len(args) != 1 {
				o.ErrPrintln("USAGE: rm <KEY>")
				return 2
			}

			err := eng.Remove(args[0])
			if minikverrors.Is(err, minikverrors.CodeKeyNotFound) {
				o.Println("Key not found")
				return 1
			}
			if err != nil {
				o.ErrPrintln("error:", err)
				return 1
			}

			return 0
		},
	}
}
