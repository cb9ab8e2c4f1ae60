// Command rowvm runs a compiled row-processing program against one or
// more input files (or stdin).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"rowvm/internal/interp"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		printErr(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	prog := demoProgram()
	vm, err := interp.New(prog, args)
	if err != nil {
		return errors.Wrap(err, "initializing interpreter")
	}
	defer vm.Close()

	if err := vm.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}

// printErr writes a diagnostic to stderr. When stderr is a terminal the
// full %+v form (including the pkg/errors stack trace) is shown; when
// it's redirected to a file or pipe, just the message.
func printErr(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "rowvm: %+v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "rowvm: %v\n", err)
}
