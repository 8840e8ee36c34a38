package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds CLI configuration.
type Config struct {
	DBPath       string
	RestaurantID string
	ReadOnly     bool
	ImportPath   string
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with flag parsing.
	_ = godotenv.Load(".env.local", ".env")

	var showVersion bool
	flag.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default: ~/.tablo/tablo.db)")
	flag.StringVar(&config.RestaurantID, "restaurant", "", "Restaurant id to open (or set TABLO_RESTAURANT)")
	flag.BoolVar(&config.ReadOnly, "read-only", false, "Open the floor plan without allowing edits")
	flag.StringVar(&config.ImportPath, "import", "", "Import a legacy flat table JSON export before starting")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("tablo " + version)
		os.Exit(0)
	}

	if config.RestaurantID == "" {
		config.RestaurantID = os.Getenv("TABLO_RESTAURANT")
	}
	if config.RestaurantID == "" {
		config.RestaurantID = "default"
	}

	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, ".tablo")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(configDir, "tablo.db")
	}

	return config, nil
}
