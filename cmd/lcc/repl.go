package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/vic/lcc/pkg/interp"
)

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// linerPrompt treats Ctrl-C at the prompt as an empty line.
type linerPrompt struct {
	*liner.State
}

func (p linerPrompt) Prompt(prompt string) (string, error) {
	line, err := p.State.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	return line, err
}

// terminalREPL runs the interactive loop with line editing and a history
// file.
func terminalREPL(in *interp.Interpreter, history string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	err := in.REPL(linerPrompt{ln})
	fmt.Fprintln(in.Out)
	return err
}

func runREPL(in *interp.Interpreter, stdin io.Reader, history string) error {
	if isTerminal(stdin) {
		return terminalREPL(in, history)
	}
	return in.ReadLoop(bufio.NewReader(stdin))
}
