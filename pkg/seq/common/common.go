// 29 Apr 2020
// Things every command wants: exit codes, the gap character, somewhere
// to log to and a way to write test input to a file.

package common

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const GapChar byte = '-' // a minus sign is always used for gaps

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}

// LogWhere decides where to send logged output.
// "" means throw it away, "stdout" and "stderr" mean what they say,
// anything else is a file name which we append to.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo {
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	case "stderr":
		iowriter = os.Stderr
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("creating log file: %w", err)
		}
	}
	return log.New(iowriter, "", log.Lshortfile), nil
}

var (
	okColour   = color.New(color.FgGreen)
	warnColour = color.New(color.FgYellow)
)

// Okf prints a status line marked as a success. Colour goes away by
// itself when stdout is not a terminal.
func Okf(w io.Writer, format string, a ...interface{}) {
	okColour.Fprint(w, "✓ ")
	fmt.Fprintf(w, format, a...)
}

// Warnf prints a warning to w.
func Warnf(w io.Writer, format string, a ...interface{}) {
	warnColour.Fprint(w, "Warning: ")
	fmt.Fprintf(w, format, a...)
}

// WarnExists prints a warning if we are about to trash a file.
// It does not return an error.
func WarnExists(fname string) {
	if fname == "" || fname == "-" {
		return
	}
	if _, err := os.Stat(fname); err == nil {
		Warnf(os.Stderr, "trashing old version of %s\n", fname)
	}
}
