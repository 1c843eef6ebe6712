package main

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles pulls in local dev config; variables already set in the
// environment (Docker, CI) always win over the files.
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "db/migrations"
}
