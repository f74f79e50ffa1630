package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrotrack/entities"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/progress"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute_MidCycle(t *testing.T) {
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 1, 11),
		Status:               lifecycle.StatusGrowing,
	}
	got := progress.Compute(in, date(2024, 1, 6))

	assert.Equal(t, 50, got.GrowthProgressPercent)
	assert.Equal(t, progress.StageGrowing, got.GrowthStage)
	assert.Equal(t, 5, got.DaysUntilHarvest)
}

func TestGrowthProgressPercent_DegenerateDates(t *testing.T) {
	planted := date(2024, 1, 1)
	for _, now := range []time.Time{date(2023, 12, 1), planted, date(2024, 3, 1)} {
		assert.Equal(t, 100, progress.GrowthProgressPercent(planted, planted, lifecycle.StatusPlanted, now))
	}
	// harvest before planting
	assert.Equal(t, 100, progress.GrowthProgressPercent(planted, date(2023, 12, 20), lifecycle.StatusGrowing, planted))
}

func TestGrowthProgressPercent_Harvested(t *testing.T) {
	in := progress.Input{
		PlantedDate:          date(2024, 1, 1),
		EstimatedHarvestDate: date(2024, 6, 1),
		Status:               lifecycle.StatusHarvested,
	}
	got := progress.Compute(in, date(2024, 2, 1))

	assert.Equal(t, 100, got.GrowthProgressPercent)
	assert.Equal(t, progress.StageComplete, got.GrowthStage)
	// the calculator does not suppress the countdown; callers do
	assert.Equal(t, 121, got.DaysUntilHarvest)
}

func TestGrowthProgressPercent_HarvestedIgnoresDates(t *testing.T) {
	planted := date(2024, 5, 1)
	cases := []struct {
		harvest time.Time
		now     time.Time
	}{
		{date(2024, 9, 1), date(2024, 1, 1)},
		{date(2024, 9, 1), planted},
		{date(2024, 9, 1), date(2025, 1, 1)},
		{planted, planted},
	}
	for _, c := range cases {
		assert.Equal(t, 100, progress.GrowthProgressPercent(planted, c.harvest, lifecycle.StatusHarvested, c.now))
	}
}

func TestGrowthProgressPercent_Bounds(t *testing.T) {
	planted := date(2024, 3, 1)
	harvest := date(2024, 7, 1)

	tests := []struct {
		name   string
		status lifecycle.Status
		now    time.Time
		want   int
	}{
		{"at planting", lifecycle.StatusPlanted, planted, 0},
		{"before planting", lifecycle.StatusPlanted, date(2024, 2, 1), 0},
		{"at harvest", lifecycle.StatusReady, harvest, 100},
		{"overdue", lifecycle.StatusReady, date(2024, 8, 15), 100},
		{"ready status at planting", lifecycle.StatusReady, planted, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.GrowthProgressPercent(planted, harvest, tt.status, tt.now))
		})
	}
}

func TestGrowthProgressPercent_RoundsHalfUp(t *testing.T) {
	planted := date(2024, 1, 1)
	harvest := planted.Add(200 * time.Hour)
	// 1/200 of the window = 0.5%
	assert.Equal(t, 1, progress.GrowthProgressPercent(planted, harvest, lifecycle.StatusGrowing, planted.Add(time.Hour)))
	// 0.4999%
	assert.Equal(t, 0, progress.GrowthProgressPercent(planted, harvest, lifecycle.StatusGrowing, planted.Add(59*time.Minute)))
}

func TestGrowthProgressPercent_AlwaysInRange(t *testing.T) {
	planted := date(2024, 1, 1)
	harvests := []time.Time{date(2023, 1, 1), planted, date(2024, 1, 2), date(2024, 12, 31)}
	for _, h := range harvests {
		for offset := -400; offset <= 800; offset += 37 {
			for _, st := range lifecycle.Statuses() {
				pct := progress.GrowthProgressPercent(planted, h, st, planted.AddDate(0, 0, offset))
				require.GreaterOrEqual(t, pct, 0)
				require.LessOrEqual(t, pct, 100)
			}
		}
	}
}

func TestDaysUntilHarvest(t *testing.T) {
	planted := date(2024, 1, 1)
	harvest := date(2024, 1, 11)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at planting", planted, 10},
		{"partial day rounds up", date(2024, 1, 6).Add(10 * time.Hour), 5},
		{"harvest day", harvest, 0},
		{"one hour before", harvest.Add(-time.Hour), 1},
		{"overdue", date(2024, 2, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.DaysUntilHarvest(planted, harvest, tt.now))
		})
	}
}

func TestGrowthStageLabel(t *testing.T) {
	tests := []struct {
		pct  int
		want progress.Stage
	}{
		{0, progress.StageInitial},
		{29, progress.StageInitial},
		{30, progress.StageGrowing},
		{59, progress.StageGrowing},
		{60, progress.StageMaturing},
		{89, progress.StageMaturing},
		{90, progress.StageReadyToHarvest},
		{100, progress.StageReadyToHarvest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progress.GrowthStageLabel(tt.pct, lifecycle.StatusGrowing), "pct=%d", tt.pct)
		assert.Equal(t, progress.StageComplete, progress.GrowthStageLabel(tt.pct, lifecycle.StatusHarvested), "pct=%d", tt.pct)
	}
}

func TestGrowthStageLabel_Monotonic(t *testing.T) {
	rank := map[progress.Stage]int{
		progress.StageInitial:        0,
		progress.StageGrowing:        1,
		progress.StageMaturing:       2,
		progress.StageReadyToHarvest: 3,
	}
	prev := -1
	for pct := 0; pct <= 100; pct++ {
		r, ok := rank[progress.GrowthStageLabel(pct, lifecycle.StatusReady)]
		require.True(t, ok)
		require.GreaterOrEqual(t, r, prev, "pct=%d", pct)
		prev = r
	}
}

func TestFromCulture(t *testing.T) {
	c := &entities.Culture{
		PlantedDate:          date(2024, 4, 1),
		EstimatedHarvestDate: date(2024, 8, 1),
		Status:               lifecycle.StatusReady,
	}
	in := progress.FromCulture(c)
	assert.Equal(t, c.PlantedDate, in.PlantedDate)
	assert.Equal(t, c.EstimatedHarvestDate, in.EstimatedHarvestDate)
	assert.Equal(t, lifecycle.StatusReady, in.Status)
	assert.Equal(t, progress.Compute(in, date(2024, 5, 1)), progress.Direct().Progress(in, date(2024, 5, 1)))
}
