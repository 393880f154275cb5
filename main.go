package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/PolarWolf314/rotp/cmd"
	"github.com/PolarWolf314/rotp/internal/secret"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cmd.Execute(ctx)
	stop()
	secret.Purge()
	if err != nil {
		os.Exit(1)
	}
}
