package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KazanKK/tablextract/cmd"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cmd.Run(ctx, os.Args, cmd.Options{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: term.IsTerminal(int(os.Stdout.Fd())),
	})
	stop()
	os.Exit(code)
}
