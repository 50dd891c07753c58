// Package console runs AmbiDB's interactive numbered menu.
//
// Input comes from a Prompter. On a terminal that is a readline instance
// (line editing, Ctrl-C/Ctrl-D handling); for pipes and tests it is a plain
// line reader. Either way every prompt returns one line without its line
// terminator, or io.EOF once input is exhausted.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Prompter shows a prompt and reads one line of input.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewPrompter returns a readline prompter when stdin is a terminal and a
// plain line prompter otherwise.
func NewPrompter(stdin *os.File, stdout io.Writer) (Prompter, error) {
	if IsTerminal(stdin) {
		return NewReadline()
	}
	return NewLinePrompter(stdin, stdout), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// readline-backed prompter
// ─────────────────────────────────────────────────────────────────────────────

type readlinePrompter struct {
	rl *readline.Instance
}

// NewReadline returns a Prompter reading from the terminal through
// chzyer/readline. History is kept in memory only: the menu asks for ids
// and names, not commands worth recalling across sessions.
func NewReadline() (Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		FuncFilterInputRune:    filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("console.NewReadline: %w", err)
	}
	return &readlinePrompter{rl: rl}, nil
}

// filterInput disables Ctrl+Z so the menu cannot be suspended halfway
// through an update.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

func (p *readlinePrompter) Prompt(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (p *readlinePrompter) Close() error {
	return p.rl.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// plain line prompter
// ─────────────────────────────────────────────────────────────────────────────

type linePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter writes prompts to w and reads lines from r.
// A final line without a newline is still returned.
func NewLinePrompter(r io.Reader, w io.Writer) Prompter {
	return &linePrompter{r: bufio.NewReader(r), w: w}
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *linePrompter) Close() error { return nil }
