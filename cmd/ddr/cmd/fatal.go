package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/oneconcern/ddr/pkg/batch"
	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/inherit"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// stdout and stderr are replaced by buffers in tests
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func logStdOut(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(stdout, format, args...)
}

func logStdErr(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, format, args...)
}

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	logStdErr(format+"\n", args...)
	osExit(code)
}

// reportFatal prints every detail carried by err before exiting
func reportFatal(msg string, err error) {
	var herr *batch.HeaderError
	if errors.As(err, &herr) {
		for _, name := range herr.Missing {
			logStdErr("%s missing required header %s\n", red("✗"), name)
		}
		for _, name := range herr.Unknown {
			logStdErr("%s unknown header %s\n", red("✗"), name)
		}
	}
	for _, verr := range batch.Failures(err) {
		logStdErr("%s %v\n", red("✗"), verr)
	}
	if errors.Is(err, inherit.ErrPropagation) {
		for _, e := range errors.Errors(errors.Unwrap(err)) {
			logStdErr("%s %v\n", red("✗"), e)
		}
	}
	wrapFatalln(msg, err)
}
