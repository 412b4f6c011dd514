// Package output routes rendered bytes to standard output or to the
// standard input of a paginating subprocess. Both routes are exposed as one
// writable sink.
package output

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/yaklabco/mdtty/internal/logging"
)

// defaultPager is used when neither MDTTY_PAGER nor PAGER is set.
const defaultPager = "less -R"

// Output is a writable byte sink with an optional subprocess behind it.
type Output struct {
	w     io.Writer
	close func() error
}

// Stdout creates an output writing directly to standard output.
func Stdout() *Output {
	return &Output{w: os.Stdout}
}

// Pager launches a paginating subprocess and returns an output writing to
// its standard input. The command comes from, in order: the command
// argument, $MDTTY_PAGER, $PAGER, then "less -R".
func Pager(command string) (*Output, error) {
	return pagerTo(command, os.Stdout)
}

// pagerTo is the testable core of Pager with an injectable pager stdout.
func pagerTo(command string, stdout io.Writer) (*Output, error) {
	if command == "" {
		command = os.Getenv("MDTTY_PAGER")
	}
	if command == "" {
		command = os.Getenv("PAGER")
	}
	if command == "" {
		command = defaultPager
	}

	words := strings.Fields(command)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty pager command")
	}

	logging.Default().Debug("starting pager", logging.FieldPager, command)

	cmd := exec.Command(words[0], words[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open pager stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start pager %q: %w", words[0], err)
	}

	return &Output{
		w: stdin,
		close: func() error {
			if err := stdin.Close(); err != nil {
				_ = cmd.Wait()
				return fmt.Errorf("close pager stdin: %w", err)
			}
			if err := cmd.Wait(); err != nil {
				return fmt.Errorf("pager %q: %w", words[0], err)
			}
			return nil
		},
	}, nil
}

// Writer returns the underlying sink.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Close shuts down the pager subprocess, if any, and waits for it to exit.
func (o *Output) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}
