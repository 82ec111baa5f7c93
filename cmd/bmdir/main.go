package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nikbrunner/bmdir/internal/storage"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2 // bookmark source or config file unusable
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "bmdir: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var cfgErr *configError
	if storage.IsStartupError(err) || errors.As(err, &cfgErr) {
		return exitConfig
	}
	return exitFailure
}

// configError reports a config file that could not be loaded.
type configError struct {
	Path string
	Err  error
}

func (e *configError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *configError) Unwrap() error {
	return e.Err
}
