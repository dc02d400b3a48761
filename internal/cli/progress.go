package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// progressReporter shows the state of a long-running step.
type progressReporter interface {
	Start(message string)
	Succeed(message string)
	Fail(message string)
}

// newProgressReporter returns a spinner on interactive terminals and a silent reporter
// otherwise. Verbose runs stay silent so the spinner does not interleave with log lines.
func newProgressReporter(writer io.Writer, verbose bool) progressReporter {
	if verbose || !isTerminal(writer) {
		return silentProgress{}
	}
	return &spinnerProgress{writer: writer}
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

type silentProgress struct{}

func (silentProgress) Start(string)   {}
func (silentProgress) Succeed(string) {}
func (silentProgress) Fail(string)    {}

type spinnerProgress struct {
	writer  io.Writer
	spinner *pterm.SpinnerPrinter
}

func (progress *spinnerProgress) Start(message string) {
	spinner, err := pterm.DefaultSpinner.WithWriter(progress.writer).Start(message)
	if err != nil {
		return
	}
	progress.spinner = spinner
}

func (progress *spinnerProgress) Succeed(message string) {
	if progress.spinner != nil {
		progress.spinner.Success(message)
	}
}

func (progress *spinnerProgress) Fail(message string) {
	if progress.spinner != nil {
		progress.spinner.Fail(message)
	}
}
