package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sergev/tlox/internal/config"
	"github.com/sergev/tlox/internal/watch"
	"github.com/sergev/tlox/runtime"
)

const clearScreen = "\033[H\033[2J"

// runWatch runs the script, then again after every change, each time with a
// fresh interpreter. It returns when ctx is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, opts options, stdout, stderr io.Writer) int {
	w, err := watch.New(opts.script, watch.Options{
		Debounce: cfg.Watch.Debounce,
		Stdout:   stdout,
		Stderr:   stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "tlox: %v\n", err)
		return exitIO
	}
	defer w.Close()

	runOnce := func() {
		if cfg.Watch.Clear {
			io.WriteString(stdout, clearScreen)
		}
		src, err := runtime.ReadSource(opts.script)
		if err != nil {
			report(stderr, err)
			return
		}
		runSource(src, opts, stdout, stderr)
	}

	runOnce()
	if err := w.Run(ctx, runOnce); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(stderr, "tlox: %v\n", err)
		return exitIO
	}
	return exitOK
}
