package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tablo/cmd"
	"tablo/internal/canvas"
	"tablo/internal/db"
	"tablo/internal/model"
	"tablo/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if config.ImportPath != "" {
		if err := importLegacyPlan(database, config.RestaurantID, config.ImportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to import %s: %v\n", config.ImportPath, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ℹ  Imported legacy layout from %s\n", config.ImportPath)
	}

	count, err := db.CountFloorPlans(database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to inspect database: %v\n", err)
		os.Exit(1)
	}
	if count == 0 {
		if _, err := db.SeedDemo(database, config.RestaurantID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed demo data: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "ℹ  Empty database, seeded a demo floor plan")
	}

	p := tea.NewProgram(
		ui.New(database, config.RestaurantID, config.ReadOnly),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// importLegacyPlan reads a flat pixel-unit table export and stores it as a
// new floor plan.
func importLegacyPlan(database *sql.DB, restaurantID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var records []canvas.LegacyTableRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	cfg := canvas.DefaultConfig()
	now := time.Now()
	plan := model.FloorPlan{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         "Imported floor plan",
		Meta:         model.PlanMeta{LastModified: now},
	}
	for _, rec := range records {
		plan.Objects = append(plan.Objects, cfg.FromLegacyRecord(rec, now))
	}

	_, err = db.SaveFloorPlan(database, plan)
	return err
}
