package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/progress"
)

func TestCache_SameDaySharesEntry(t *testing.T) {
	c := progress.NewCache(16, time.Hour)
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 1, 11),
		Status:               lifecycle.StatusGrowing,
	}

	morning := c.Progress(in, date(2024, 1, 6).Add(8*time.Hour))
	evening := c.Progress(in, date(2024, 1, 6).Add(20*time.Hour))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, morning, evening)
	assert.Equal(t, progress.Compute(in, date(2024, 1, 6)), morning)
}

func TestCache_KeyIncludesStatusAndDay(t *testing.T) {
	c := progress.NewCache(16, time.Hour)
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 1, 11),
		Status:               lifecycle.StatusGrowing,
	}
	c.Progress(in, date(2024, 1, 6))
	c.Progress(in, date(2024, 1, 7))

	in.Status = lifecycle.StatusHarvested
	got := c.Progress(in, date(2024, 1, 7))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, progress.StageComplete, got.GrowthStage)
}

func TestCache_Evicts(t *testing.T) {
	c := progress.NewCache(2, time.Hour)
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 3, 1),
		Status:               lifecycle.StatusPlanted,
	}
	for d := 1; d <= 5; d++ {
		c.Progress(in, date(2024, 1, d))
	}
	assert.Equal(t, 2, c.Len())
}

func TestStartOfDay(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	ts := time.Date(2024, 3, 10, 23, 30, 0, 0, paris)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, paris), progress.StartOfDay(ts))
}

func TestCache_ComputesAtMidnight(t *testing.T) {
	c := progress.NewCache(16, time.Hour)
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 1, 2),
		Status:               lifecycle.StatusPlanted,
	}
	evening := date(2024, 1, 1).Add(18 * time.Hour)

	direct := progress.Direct().Progress(in, evening)
	assert.Equal(t, 75, direct.GrowthProgressPercent)
	assert.Equal(t, progress.StageMaturing, direct.GrowthStage)

	cached := c.Progress(in, evening)
	assert.Equal(t, 0, cached.GrowthProgressPercent)
	assert.Equal(t, progress.StageInitial, cached.GrowthStage)
	assert.Equal(t, progress.Compute(in, date(2024, 1, 1)), cached)
}
