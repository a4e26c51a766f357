package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/blogify/internal/server/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCommandLine(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}
}
