package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// AccountID for all locations until multi-tenant accounts exist.
const defaultAccountID = "33ccddbb-fe9f-489f-83b0-69e2a1e4eff8"

type Config struct {
	DBPath      string
	SourcesDir  string
	CatalogPath string
	OutputDir   string
	AccountID   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:      getEnv("UNIPOS_DB_PATH", filepath.Join(cwd, "data", "unipos.db")),
		SourcesDir:  getEnv("UNIPOS_SOURCES_DIR", filepath.Join(cwd, "data", "sources")),
		CatalogPath: getEnv("UNIPOS_CATALOG_PATH", filepath.Join(cwd, "data", "item_catalog.json")),
		OutputDir:   getEnv("UNIPOS_OUTPUT_DIR", filepath.Join(cwd, "out")),
		AccountID:   getEnv("UNIPOS_ACCOUNT_ID", defaultAccountID),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
