// Package pingpong sends one integer from a parent process to a child
// process over a pipe and reads it back over a second pipe.
//
// The parent (the initiator) creates two pipes, starts the child (the
// responder), writes a value on the fwd pipe, reaps the child, and reads the
// echo from the back pipe. The child reads the value and writes it back
// unmodified. Each side only ever holds its own read endpoint and its own
// write endpoint.
//
// # Basic Usage
//
// The child is the same binary, started again with a marker in its
// environment. A program therefore checks its role first:
//
//	func main() {
//	    ctx := context.Background()
//
//	    if pingpong.IsResponder() {
//	        if err := pingpong.ServeResponder(ctx); err != nil {
//	            log.Fatal(err)
//	        }
//
//	        return
//	    }
//
//	    result, err := pingpong.Run(ctx, pingpong.WithTrace(os.Stdout))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(result.Sent, result.Received, result.Matched())
//	}
//
// Test binaries do the same in TestMain.
//
// # In-Process Responder
//
// WithInProcess runs the responder in a goroutine over the same pipes, with
// no second process:
//
//	result, err := pingpong.Run(ctx, pingpong.WithInProcess(), pingpong.WithValue(123456))
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	result, err := pingpong.Run(ctx, pingpong.WithLogger(logger))
//
// # Error Handling
//
// Failures are reported with typed errors:
//
//	result, err := pingpong.Run(ctx)
//	if err != nil {
//	    if spawnErr, ok := errors.AsType[*pingpong.SpawnError](err); ok {
//	        log.Fatalf("could not start responder %s: %v", spawnErr.Path, spawnErr.Err)
//	    }
//	}
//
// A received value that differs from the sent one is not an error; check
// Result.Matched.
package pingpong
