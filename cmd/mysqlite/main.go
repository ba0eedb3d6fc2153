package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/satishbabariya/mysqlite-go/cmd/mysqlite/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
