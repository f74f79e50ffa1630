package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrotrack/database"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/progress"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and repair legacy statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenSQLite(cfg.DBPath, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		logger.Info("database ready", zap.String("path", cfg.DBPath))
		return nil
	},
}

var (
	progressPlanted string
	progressHarvest string
	progressStatus  string
	progressNow     string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print the derived growth progress for the given dates and status",
	Long: `Computes days until harvest, growth percentage and stage without a server.

Example:
  agrotrack progress --planted 2024-01-01 --harvest 2024-05-01 --status growing --now 2024-03-01`,
	RunE: runProgress,
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "List the culture statuses with their labels and badge classes",
	RunE:  runStatuses,
}

func init() {
	progressCmd.Flags().StringVar(&progressPlanted, "planted", "", "planting date (YYYY-MM-DD or RFC3339)")
	progressCmd.Flags().StringVar(&progressHarvest, "harvest", "", "estimated harvest date (YYYY-MM-DD or RFC3339)")
	progressCmd.Flags().StringVar(&progressStatus, "status", string(lifecycle.InitialStatus), "culture status")
	progressCmd.Flags().StringVar(&progressNow, "now", "", "reference instant, defaults to the current time")
	_ = progressCmd.MarkFlagRequired("planted")
	_ = progressCmd.MarkFlagRequired("harvest")
}

type progressOutput struct {
	Status                lifecycle.Status `json:"status"`
	DaysUntilHarvest      *int             `json:"daysUntilHarvest,omitempty"`
	GrowthProgressPercent int              `json:"growthProgressPercent"`
	GrowthStage           progress.Stage   `json:"growthStage"`
}

func runProgress(cmd *cobra.Command, args []string) error {
	loc := cfg.Location()
	planted, err := parseFlagTime(progressPlanted, loc)
	if err != nil {
		return fmt.Errorf("--planted: %w", err)
	}
	harvest, err := parseFlagTime(progressHarvest, loc)
	if err != nil {
		return fmt.Errorf("--harvest: %w", err)
	}
	status, err := lifecycle.ParseStatus(progressStatus)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	if progressNow != "" {
		if now, err = parseFlagTime(progressNow, loc); err != nil {
			return fmt.Errorf("--now: %w", err)
		}
	}

	p := progress.Compute(progress.Input{
		PlantedDate:          planted,
		EstimatedHarvestDate: harvest,
		Status:               status,
	}, now)
	out := progressOutput{
		Status:                status,
		GrowthProgressPercent: p.GrowthProgressPercent,
		GrowthStage:           p.GrowthStage,
	}
	if status != lifecycle.StatusHarvested {
		out.DaysUntilHarvest = &p.DaysUntilHarvest
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runStatuses(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tLABEL\tTONE\tBADGE")
	for _, m := range lifecycle.Catalog() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Status, m.LabelFeminine, m.Tone, m.BadgeClass)
	}
	return w.Flush()
}

func parseFlagTime(v string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", v, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
