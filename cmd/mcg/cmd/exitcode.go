package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/comic"
	"github.com/f3rmion/mcg/internal/dataset"
	"github.com/f3rmion/mcg/internal/history"
	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/render"
	"github.com/f3rmion/mcg/internal/transcript"
)

// Exit codes, from sysexits(3).
const (
	exitFailure     = 1
	exitUsage       = 64
	exitDataErr     = 65
	exitNoInput     = 66
	exitCantCreate  = 73
	exitNoPerm      = 77
	exitInterrupted = 130
)

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its errors exit with the
// usage code.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	var (
		usage  *usageError
		output *comic.OutputError
		header *transcript.HeaderError
		format *dataset.FormatError
	)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &usage):
		return exitUsage
	case errors.Is(err, fs.ErrPermission):
		return exitNoPerm
	case errors.As(err, &output):
		return exitCantCreate
	case errors.As(err, &header), errors.As(err, &format), errors.Is(err, markov.ErrNoTrainingData),
		errors.Is(err, render.ErrNotPNG):
		return exitDataErr
	case errors.Is(err, dataset.ErrNoComics), errors.Is(err, history.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return exitNoInput
	default:
		return exitFailure
	}
}
