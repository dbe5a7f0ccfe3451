// Command server runs the workout data engine: it connects to PostgreSQL,
// wires the repositories and the workout-log service, and stays up until
// interrupted. HTTP dispatch and authentication live in separate
// deployables.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nilecochen/trainlog-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
