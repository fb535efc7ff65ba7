package main

import (
	"github.com/joho/godotenv"

	"github.com/aircast-fm/aircast/internal/cli"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cli.Execute()
}
