package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"user-account-service/cmd/api/app"
	"user-account-service/cmd/api/server"
)

func main() {
	// Load .env before anything reads configuration. A missing file is fine;
	// production supplies real environment variables.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}
