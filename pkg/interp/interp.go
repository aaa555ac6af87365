// Package interp drives the lambda package: it reads programs from files or
// interactive lines, parses them, reduces them to normal form and renders
// every intermediate term.
package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/vic/lcc/pkg/lambda"
)

// Prompt is shown before every interactive line.
const Prompt = `\.> `

// LineReader supplies interactive input. Prompt returns io.EOF when the
// input is exhausted. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// historian is implemented by line readers that keep a history.
type historian interface {
	AppendHistory(item string)
}

// Interpreter runs programs one unit of work at a time: a whole file, or a
// single interactive line.
type Interpreter struct {
	Out     io.Writer
	Err     io.Writer
	Reducer *lambda.Reducer
	Log     *logrus.Logger
	Quiet   bool // print only the normal form

	total   lambda.Stats
	last    lambda.Stats
	elapsed time.Duration
}

func New(out, errOut io.Writer) *Interpreter {
	log := logrus.New()
	log.SetOutput(errOut)
	return &Interpreter{
		Out:     out,
		Err:     errOut,
		Reducer: lambda.NewReducer(),
		Log:     log,
	}
}

// Stats returns the statistics accumulated over every run.
func (in *Interpreter) Stats() lambda.Stats { return in.total }

// LastStats returns the statistics of the most recent run.
func (in *Interpreter) LastStats() lambda.Stats { return in.last }

// Elapsed returns the total time spent reducing.
func (in *Interpreter) Elapsed() time.Duration { return in.elapsed }

// RunFile reduces the single expression stored in path.
func (in *Interpreter) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()

	tokens, err := lambda.NewLexer(f).All()
	if err != nil {
		return err
	}
	in.Log.WithField("file", path).Debug("loaded program")
	return in.run(tokens)
}

// RunSource reduces the expression in src.
func (in *Interpreter) RunSource(src string) error {
	tokens, err := lambda.Tokenize(src)
	if err != nil {
		return err
	}
	return in.run(tokens)
}

// Run reduces the program read from r until end of input.
func (in *Interpreter) Run(r io.Reader) error {
	tokens, err := lambda.NewLexer(r).All()
	if err != nil {
		return err
	}
	return in.run(tokens)
}

func (in *Interpreter) run(tokens []lambda.Token) error {
	debug := in.Log.IsLevelEnabled(logrus.DebugLevel)
	if debug {
		in.Log.WithField("tokens", lambda.FormatTokens(tokens)).Debug("parsing")
	}
	term, err := lambda.ParseTokens(tokens)
	if err != nil {
		return err
	}

	r := in.Reducer
	r.ResetStats()
	start := time.Now()
	result, err := r.Normalize(term, func(step uint64, t lambda.Term) error {
		if debug {
			in.Log.WithFields(logrus.Fields{
				"step":        step,
				"size":        lambda.Size(t),
				"fingerprint": fmt.Sprintf("%016x", lambda.Fingerprint(t)),
			}).Debug("reducing")
		}
		if in.Quiet {
			return nil
		}
		_, werr := fmt.Fprintf(in.Out, "step %d: %s\n", step, t)
		return werr
	})
	in.elapsed += time.Since(start)
	in.last = r.Stats()
	in.total.Add(in.last)
	if err != nil {
		return err
	}

	in.Log.WithField("reductions", in.last.TotalReductions).Debug("normal form reached")
	if in.Quiet {
		_, err = fmt.Fprintln(in.Out, result)
	}
	return err
}

// REPL reads one program per line until end of input or :quit. Errors are
// reported and the loop moves on to the next line; only a failure of the
// line reader itself ends the loop with an error.
func (in *Interpreter) REPL(lines LineReader) error {
	for {
		line, err := lines.Prompt(Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if h, ok := lines.(historian); ok {
			h.AppendHistory(line)
		}

		if strings.HasPrefix(line, ":") {
			if in.command(line) {
				return nil
			}
			continue
		}

		in.clearInterrupt()
		if err := in.RunSource(line); err != nil {
			in.Report(err)
		}
	}
}

// ReadLoop is the REPL for input that is not a terminal. Each line is
// tokenized straight from r up to its newline; a line starting with ':' is
// a command.
func (in *Interpreter) ReadLoop(r *bufio.Reader) error {
	for {
		fmt.Fprint(in.Out, Prompt)
		next, err := firstNonBlank(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if next == ':' {
			line, err := readRest(r)
			if err != nil {
				return err
			}
			if in.command(strings.TrimSpace(line)) {
				return nil
			}
			continue
		}

		tokens, lexErr := lambda.LexUntil(r, '\n')
		if lexErr != nil {
			if !errors.Is(lexErr, lambda.ErrLexical) {
				return lexErr
			}
			if _, err := readRest(r); err != nil {
				return err
			}
			in.Report(lexErr)
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		in.clearInterrupt()
		if err := in.run(tokens); err != nil {
			in.Report(err)
		}
	}
}

// firstNonBlank peeks past leading spaces and tabs without consuming them,
// so lexer positions still count from the start of the line.
func firstNonBlank(r *bufio.Reader) (byte, error) {
	for n := 1; ; n++ {
		b, err := r.Peek(n)
		if errors.Is(err, bufio.ErrBufferFull) {
			return ' ', nil
		}
		if len(b) < n {
			if len(b) > 0 && errors.Is(err, io.EOF) {
				return ' ', nil
			}
			return 0, err
		}
		if c := b[n-1]; c != ' ' && c != '\t' {
			return c, nil
		}
	}
}

// readRest consumes the remainder of the current line.
func readRest(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return line, err
}

func (in *Interpreter) clearInterrupt() {
	if in.Reducer.Interrupt != nil {
		in.Reducer.Interrupt.UnSet()
	}
}

const help = `Enter a term on a single line, e.g. ((\x.x) (\y.y)).
  :stats  reduction statistics for this session
  :trace  most recent reductions (when tracing is enabled)
  :help   this message
  :quit   leave
`

// command runs a REPL command and reports whether the loop should end.
func (in *Interpreter) command(line string) (quit bool) {
	switch strings.ToLower(line) {
	case ":quit", ":q":
		return true
	case ":stats":
		WriteStats(in.Out, in.total, in.elapsed)
	case ":trace":
		events := in.Reducer.TraceSnapshot()
		if events == nil {
			fmt.Fprintln(in.Out, "tracing is off")
			break
		}
		fmt.Fprintln(in.Out, lambda.FormatTrace(events))
	case ":help":
		fmt.Fprint(in.Out, help)
	default:
		in.Report(fmt.Errorf("unknown command %s, type :help", line))
	}
	return false
}

// Report prints err to the error writer with a highlighted label.
func (in *Interpreter) Report(err error) {
	label := Label(err)
	msg := strings.TrimPrefix(FormatError(err), label)
	fmt.Fprintln(in.Err, color.New(color.FgRed, color.Bold).Sprint(label)+msg)
}

// Label names the kind of err, or "error" when it did not come from the
// lexer, parser or reducer.
func Label(err error) string {
	if k := lambda.KindOf(err); k != lambda.KindUnknown {
		return k.String()
	}
	return "error"
}

// FormatError renders err as a label followed by its contextual message.
func FormatError(err error) string {
	var lerr *lambda.Error
	if errors.As(err, &lerr) {
		return lerr.Error()
	}
	return "error: " + err.Error()
}
