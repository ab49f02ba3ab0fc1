package common

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CmdError is what we get when an external program fails. It carries
// whatever the program said.
type CmdError struct {
	Cmd    string // the command line, joined by spaces
	Code   int    // exit status, -1 if it never ran
	Stdout string
	Stderr string
	Err    error
}

func (e *CmdError) Error() string {
	var msg string
	if e.Code >= 0 {
		msg = fmt.Sprintf("'%s' failed with return code %d", e.Cmd, e.Code)
	} else {
		msg = fmt.Sprintf("'%s' failed: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s\nSTDOUT: %s\nSTDERR: %s", msg, e.Stdout, e.Stderr)
}

func (e *CmdError) Unwrap() error { return e.Err }

// CmdLine gives a command and its arguments as one string.
func CmdLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// RunCmd runs a program, waits for it and hands back its stdout and
// stderr. A program that cannot be started or exits with anything but
// zero gives a *CmdError.
func RunCmd(dir, name string, args ...string) (stdout, stderr []byte, err error) {
	var outb, errb bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = &outb
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		cerr := &CmdError{
			Cmd: CmdLine(name, args...), Code: -1,
			Stdout: outb.String(), Stderr: errb.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.Code = exitErr.ExitCode()
		}
		return outb.Bytes(), errb.Bytes(), cerr
	}
	return outb.Bytes(), errb.Bytes(), nil
}
