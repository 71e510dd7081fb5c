package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	pingpong "github.com/wagiedev/pingpong-go"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	// exitFatal is how exit(-1) appears to a parent shell.
	exitFatal = 255
)

type flags struct {
	debug     bool
	inProcess bool
	quiet     bool
	value     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if f.debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []pingpong.Option{pingpong.WithLogger(logger)}
	if !f.quiet {
		opts = append(opts, pingpong.WithTrace(stdout))
	}

	if pingpong.IsResponder() {
		if err := pingpong.ServeResponder(ctx, opts...); err != nil {
			logger.Error("Responder failed", "error", err)

			return exitCode(err)
		}

		return exitOK
	}

	if f.inProcess {
		opts = append(opts, pingpong.WithInProcess())
	}

	if f.value != "" {
		v, err := strconv.ParseInt(f.value, 10, 32)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "invalid -value %q: %v\n", f.value, err)

			return exitUsage
		}

		opts = append(opts, pingpong.WithValue(pingpong.Value(v)))
	}

	result, err := pingpong.Run(ctx, opts...)
	if err != nil {
		logger.Error("Round trip failed", "error", err)

		return exitCode(err)
	}

	if !result.Matched() {
		logger.Warn("Round trip corrupted the value",
			"run_id", result.RunID, "sent", result.Sent, "received", result.Received)
	}

	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("pingpong", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.BoolVar(&f.debug, "debug", false, "Log every state transition to stderr")
	fs.BoolVar(&f.inProcess, "in-process", false, "Run the responder in a goroutine instead of a child process")
	fs.BoolVar(&f.quiet, "quiet", false, "Do not print the trace")
	fs.StringVar(&f.value, "value", "", "Send this value instead of a random one")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

// exitCode maps a round trip error to the process exit status.
func exitCode(err error) int {
	if _, ok := errors.AsType[pingpong.PingPongError](err); ok {
		return exitFatal
	}

	return exitFailure
}
