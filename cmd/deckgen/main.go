// Command deckgen is a terminal front-end for the deckgen server.
//
// With arguments it submits them as one topic and exits non-zero on failure.
// Without arguments it reads one topic per line from stdin; the line "again"
// resets the form.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maauso/deckgen/internal/client"
	"github.com/maauso/deckgen/internal/config"
	"github.com/maauso/deckgen/internal/form"
)

const againCommand = "again"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	serverURL := fs.String("server", "", "server base URL (overrides DECKGEN_URL)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	logger := cfg.NewLoggerTo(stderr)

	c, err := client.NewClient(cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctrl := form.NewController(c,
		form.WithView(newTerminalView(stdout, c.Resolve)),
		form.WithLogger(logger),
	)

	if fs.NArg() > 0 {
		return oneShot(ctx, ctrl, strings.Join(fs.Args(), " "), stderr)
	}
	return interactive(ctx, ctrl, stdin, stderr)
}

func oneShot(ctx context.Context, ctrl *form.Controller, topic string, stderr io.Writer) int {
	ctrl.SetTopic(topic)
	if err := ctrl.Submit(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if ctrl.State().Phase() == form.PhaseFailure {
		return 1
	}
	return 0
}

func interactive(ctx context.Context, ctrl *form.Controller, stdin io.Reader, stderr io.Writer) int {
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return 1
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == againCommand {
			ctrl.Reset()
			continue
		}
		ctrl.SetTopic(line)
		if err := ctrl.Submit(ctx); err != nil && !errors.Is(err, form.ErrEmptyTopic) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "error: read input: %v\n", err)
		return 1
	}
	return 0
}
