package main

import (
	"context"
	"os"

	"github.com/filmdesk/filmdesk/pkg/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; deployments set env vars directly.
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
