package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

type cliFlags struct {
	watch   bool
	version bool
	help    bool
}

// parseFlags parses args, where args[0] is the program name.
func parseFlags(args []string) (cliFlags, *flag.FlagSet, error) {
	var f cliFlags
	name := "sitegen"
	if len(args) > 0 {
		args = args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when sources change")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return f, fs, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return f, fs, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, fs, nil
}
