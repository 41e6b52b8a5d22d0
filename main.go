package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sergev/tlox/internal/config"
	"github.com/sergev/tlox/lang"
	"github.com/sergev/tlox/parser"
	"github.com/sergev/tlox/runtime"
)

// Version is set at build time.
var Version = "dev"

// Exit statuses follow sysexits.h.
const (
	exitOK      = 0
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
	exitIO      = 74
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	code       string
	hasCode    bool
	check      bool
	ast        bool
	watch      bool
	script     string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	flags := flag.NewFlagSet("tlox", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		opts        options
		showVersion bool
	)
	flags.StringVar(&opts.configPath, "config", "", "Path to config file")
	flags.StringVar(&opts.code, "e", "", "Run the given source instead of a script")
	flags.BoolVar(&opts.check, "check", false, "Report static errors without running")
	flags.BoolVar(&opts.ast, "ast", false, "Print the parsed program")
	flags.BoolVar(&opts.watch, "watch", false, "Re-run the script whenever it changes")
	flags.BoolVar(&showVersion, "version", false, "Show version")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, flags)
			return exitOK
		}
		fmt.Fprintf(stderr, "tlox: %v\n", err)
		printUsage(stderr, flags)
		return exitUsage
	}
	if showVersion {
		fmt.Fprintf(stdout, "tlox version %s\n", Version)
		return exitOK
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "e" {
			opts.hasCode = true
		}
	})

	rest := flags.Args()
	switch {
	case len(rest) > 1:
		fmt.Fprintf(stderr, "tlox: too many arguments\n")
		printUsage(stderr, flags)
		return exitUsage
	case len(rest) == 1 && opts.hasCode:
		fmt.Fprintf(stderr, "tlox: -e cannot be combined with a script\n")
		return exitUsage
	case opts.check && opts.ast:
		fmt.Fprintf(stderr, "tlox: -check and -ast are exclusive\n")
		return exitUsage
	}
	if len(rest) == 1 {
		opts.script = rest[0]
	}
	if opts.watch && (opts.script == "" || opts.script == "-") {
		fmt.Fprintf(stderr, "tlox: -watch needs a script file\n")
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "tlox: %v\n", err)
		return exitUsage
	}

	if opts.watch {
		return runWatch(ctx, cfg, opts, stdout, stderr)
	}

	if opts.script == "" && !opts.hasCode && !opts.check && !opts.ast && isInteractive(stdin) {
		return runInteractiveREPL(cfg, stdout, stderr)
	}

	src, err := loadSource(opts, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "tlox: %v\n", err)
		return exitIO
	}
	return runSource(src, opts, stdout, stderr)
}

// loadSource picks the program text: -e, a script file, or all of stdin.
func loadSource(opts options, stdin io.Reader) (string, error) {
	switch {
	case opts.hasCode:
		return opts.code, nil
	case opts.script != "" && opts.script != "-":
		return runtime.ReadSource(opts.script)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
}

func runSource(src string, opts options, stdout, stderr io.Writer) int {
	switch {
	case opts.ast:
		prog, err := parser.Parse(src)
		if err != nil {
			return report(stderr, err)
		}
		io.WriteString(stdout, parser.SprintProgram(prog))
		return exitOK
	case opts.check:
		_, _, err := runtime.Check(src)
		return report(stderr, err)
	}

	in := runtime.NewInterpreter(lang.WithOutput(stdout))
	return report(stderr, runtime.EvaluateString(in, src))
}

// report prints err and maps it to an exit status.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	code := exitCode(err)
	if code == exitIO {
		fmt.Fprintf(stderr, "tlox: %v\n", err)
	} else {
		fmt.Fprintln(stderr, err)
	}
	return code
}

func exitCode(err error) int {
	var (
		rerr *lang.RuntimeError
		list parser.ErrorList
		perr *parser.Error
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &rerr):
		return exitRuntime
	case errors.As(err, &list), errors.As(err, &perr):
		return exitStatic
	default:
		return exitIO
	}
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: tlox [flags] [script]\n\n")
	fmt.Fprintf(w, "With no script, tlox starts a REPL, or runs stdin when it is not a terminal.\n\n")
	fmt.Fprintf(w, "Flags:\n")
	flags.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(w, "  -%-8s %s\n", f.Name, f.Usage)
	})
}

func isInteractive(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
