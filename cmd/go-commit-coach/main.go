// Package main wires the commit-coach command line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mrz1836/go-commit-coach/internal/cli"
	"github.com/mrz1836/go-commit-coach/internal/env"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// errPanicRecovered is returned when a panic is recovered during execution.
var errPanicRecovered = errors.New("panic recovered")

func main() {
	if err := newApp().execute(context.Background()); err != nil {
		// The error line has already been printed.
		os.Exit(1)
	}
}

// sink receives user-facing output. Tests substitute a recording sink.
type sink interface {
	Init()
	Error(msg string)
}

// app holds the seams between process startup and the cobra command tree.
type app struct {
	out sink
	run func(context.Context) error
}

func newApp() *app {
	return &app{
		out: coloredSink{},
		run: cli.ExecuteWithContext,
	}
}

// coloredSink writes through the colored output package.
type coloredSink struct{}

func (coloredSink) Init()            { output.Init() }
func (coloredSink) Error(msg string) { output.Error(msg) }

// execute runs the CLI under panic recovery, so a crash anywhere in a
// command still reaches the user as an error line and a non-zero exit
// instead of a bare stack trace.
func (a *app) execute(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.out.Error(fmt.Sprintf("Fatal error: %v\n%s", r, debug.Stack()))
			err = fmt.Errorf("%w: %v", errPanicRecovered, r)
		}
	}()

	a.out.Init()

	// A .env file in the working directory may hold the GitHub token and
	// AI keys during development. Exported variables still win.
	if envErr := env.LoadEnvFile(); envErr != nil {
		a.out.Error(fmt.Sprintf("Warning: failed to load .env file: %v", envErr))
	}

	err = a.run(ctx)
	if err != nil {
		a.out.Error(err.Error())
	}
	return err
}
