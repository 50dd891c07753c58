package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input wraps a Prompter with the validating reads used by the menu.
// Invalid input is reported on out and asked for again; the only errors
// returned are those of the Prompter itself (normally io.EOF).
type Input struct {
	p   Prompter
	out io.Writer
}

// NewInput returns an Input that reads from p and reports problems on out.
func NewInput(p Prompter, out io.Writer) *Input {
	return &Input{p: p, out: out}
}

// Line reads one line. When required is true an empty line is rejected
// and the prompt is repeated.
func (in *Input) Line(prompt string, required bool) (string, error) {
	for {
		value, err := in.p.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if !required || value != "" {
			return value, nil
		}
		fmt.Fprintln(in.out, "Input cannot be empty.")
	}
}

// Int reads an integer in [min, max], repeating the prompt until one is
// given.
func (in *Input) Int(prompt string, min, max int) (int, error) {
	for {
		raw, err := in.p.Prompt(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			fmt.Fprintln(in.out, "Invalid number. Try again.")
			continue
		}
		if value < min || value > max {
			fmt.Fprintf(in.out, "Value must be between %d and %d.\n", min, max)
			continue
		}
		return value, nil
	}
}
