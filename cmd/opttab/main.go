package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)
	defer c.teardown()

	root := newRootCommand(c)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		c.report(err)
		return 1
	}
	return 0
}
