// Package config resolves the tool configuration from CLI flags and the
// environment. The snapshot path and specification source are explicit values
// handed to the loader and writer; nothing is derived from ambient process
// location.
package config

import (
	"strings"

	"github.com/joho/godotenv"

	"openapi-sync/internal/loader"
)

// DefaultSnapshotPath is the repository-relative location of the committed
// contract snapshot.
const DefaultSnapshotPath = "openapi/contract.snapshot.json"

// Config is the resolved runtime configuration.
type Config struct {
	Source       loader.Source
	SnapshotPath string
}

// Resolve builds the configuration. An explicit flag source wins over the
// environment entirely; otherwise the OPENAPI_SPEC_URL / OPENAPI_SPEC_FILE
// variables apply. A .env file in the working directory is loaded first
// (best-effort) so local runs behave like CI.
func Resolve(flagURL, flagFile, snapshotPath string) Config {
	_ = godotenv.Load()

	src := loader.Source{
		URL:  strings.TrimSpace(flagURL),
		File: strings.TrimSpace(flagFile),
	}
	if src.URL == "" && src.File == "" {
		src = loader.FromEnv()
	}
	if strings.TrimSpace(snapshotPath) == "" {
		snapshotPath = DefaultSnapshotPath
	}
	return Config{Source: src, SnapshotPath: snapshotPath}
}
