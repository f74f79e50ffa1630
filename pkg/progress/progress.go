// Package progress derives display values for a culture from its dates and
// status. Every function takes "now" explicitly and never mutates its input.
package progress

import (
	"math"
	"time"

	"agrotrack/entities"
	"agrotrack/pkg/lifecycle"
)

const day = 24 * time.Hour

// Stage is the coarse bucket shown next to the progress bar.
type Stage string

const (
	StageInitial        Stage = "initial"
	StageGrowing        Stage = "growing"
	StageMaturing       Stage = "maturing"
	StageReadyToHarvest Stage = "ready-to-harvest"
	StageComplete       Stage = "complete"
)

// Upper bounds (exclusive) of the lower buckets.
const (
	initialUpTo  = 30
	growingUpTo  = 60
	maturingUpTo = 90
)

// Input is the subset of a culture the calculator reads.
type Input struct {
	PlantedDate          time.Time
	EstimatedHarvestDate time.Time
	Status               lifecycle.Status
}

// Progress bundles the derived values.
type Progress struct {
	DaysUntilHarvest      int   `json:"daysUntilHarvest"`
	GrowthProgressPercent int   `json:"growthProgressPercent"`
	GrowthStage           Stage `json:"growthStage"`
}

func FromCulture(c *entities.Culture) Input {
	return Input{
		PlantedDate:          c.PlantedDate,
		EstimatedHarvestDate: c.EstimatedHarvestDate,
		Status:               c.Status,
	}
}

// DaysUntilHarvest is the number of started days left before the estimated
// harvest date. Past or same-instant harvest dates report 0.
func DaysUntilHarvest(plantedDate, estimatedHarvestDate, now time.Time) int {
	left := estimatedHarvestDate.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(float64(left) / float64(day)))
}

// GrowthProgressPercent returns the share of the planting-to-harvest window
// already elapsed, in [0,100]. Harvested cultures and records whose harvest
// date is not after the planting date are complete.
func GrowthProgressPercent(plantedDate, estimatedHarvestDate time.Time, status lifecycle.Status, now time.Time) int {
	if status == lifecycle.StatusHarvested {
		return 100
	}
	total := estimatedHarvestDate.Sub(plantedDate)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(plantedDate)
	if elapsed < 0 {
		return 0
	}
	if elapsed > total {
		return 100
	}
	return int(math.Floor(100*float64(elapsed)/float64(total) + 0.5))
}

func GrowthStageLabel(percent int, status lifecycle.Status) Stage {
	if status == lifecycle.StatusHarvested {
		return StageComplete
	}
	switch {
	case percent < initialUpTo:
		return StageInitial
	case percent < growingUpTo:
		return StageGrowing
	case percent < maturingUpTo:
		return StageMaturing
	default:
		return StageReadyToHarvest
	}
}

// Compute derives all three values for in at now.
func Compute(in Input, now time.Time) Progress {
	pct := GrowthProgressPercent(in.PlantedDate, in.EstimatedHarvestDate, in.Status, now)
	return Progress{
		DaysUntilHarvest:      DaysUntilHarvest(in.PlantedDate, in.EstimatedHarvestDate, now),
		GrowthProgressPercent: pct,
		GrowthStage:           GrowthStageLabel(pct, in.Status),
	}
}

// Calculator computes progress for a culture. Compute is the uncached
// implementation; Cache memoises it.
type Calculator interface {
	Progress(in Input, now time.Time) Progress
}

type direct struct{}

// Direct returns a Calculator without caching.
func Direct() Calculator { return direct{} }

func (direct) Progress(in Input, now time.Time) Progress { return Compute(in, now) }
