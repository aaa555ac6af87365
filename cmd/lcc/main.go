package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/sirupsen/logrus"
	"github.com/tevino/abool/v2"

	"github.com/vic/lcc/pkg/interp"
	"github.com/vic/lcc/pkg/lambda"
)

const usage = `usage: lcc [-i] [-q] [-s] [-n steps] [-t events] [file]

Reduces the lambda term in file (or standard input) to normal form,
printing every intermediate term.

options:
  -i         interactive loop, one term per line
  -q         print only the normal form
  -s         print reduction statistics to stderr
  -n steps   give up after this many reductions
  -t events  print the last events reductions to stderr
  -h         this help`

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func usageError(stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, "lcc: "+format+"\n", args...)
	fmt.Fprintln(stderr, usage)
	return 2
}

// run is main with its environment passed in. It returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := loadConfig()
	in := interp.New(stdout, stderr)

	opts, optind, err := getopt.Getopts(args, "hiqsn:t:")
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	var interactive, showStats bool
	traceLen := 0
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			fmt.Fprintln(stdout, usage)
			return 0
		case 'i':
			interactive = true
		case 'q':
			in.Quiet = true
		case 's':
			showStats = true
		case 'n':
			n, err := strconv.ParseUint(opt.Value, 10, 64)
			if err != nil {
				return usageError(stderr, "invalid -n parameter %q", opt.Value)
			}
			cfg.MaxSteps = n
		case 't':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n <= 0 {
				return usageError(stderr, "invalid -t parameter %q", opt.Value)
			}
			traceLen = n
		}
	}
	files := args[optind:]
	switch {
	case len(files) > 1:
		return usageError(stderr, "expected at most one file, got %d", len(files))
	case interactive && len(files) == 1:
		return usageError(stderr, "-i does not take a file")
	}

	if cfg.Debug {
		in.Log.SetLevel(logrus.DebugLevel)
	}
	r := in.Reducer
	r.MaxSteps = cfg.MaxSteps
	r.Check = cfg.Check
	if traceLen > 0 {
		r.EnableTrace(traceLen)
	}
	r.Interrupt = abool.New()
	stop := notifyInterrupt(r.Interrupt)
	defer stop()

	in.Log.WithFields(logrus.Fields{
		"max_steps": cfg.MaxSteps,
		"check":     cfg.Check,
		"trace":     traceLen,
	}).Debug("starting")

	switch {
	case interactive:
		err = runREPL(in, stdin, cfg.History)
	case len(files) == 1:
		err = in.RunFile(files[0])
	default:
		err = in.Run(stdin)
	}

	if traceLen > 0 && !interactive {
		if events := r.TraceSnapshot(); len(events) > 0 {
			fmt.Fprintln(stderr, lambda.FormatTrace(events))
		}
	}
	if showStats {
		interp.WriteStats(stderr, in.Stats(), in.Elapsed())
	}
	if err != nil {
		in.Report(err)
		return 1
	}
	return 0
}

// notifyInterrupt sets flag on every SIGINT until stop is called, so a
// running reduction can be abandoned without killing the process.
func notifyInterrupt(flag *abool.AtomicBool) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigc:
				flag.Set()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigc)
		close(done)
	}
}
