package serviceImp_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrotrack/database"
	"agrotrack/entities"
	"agrotrack/pkg/catalog"
	"agrotrack/pkg/culture/repository"
	"agrotrack/pkg/culture/repositoryImp"
	"agrotrack/pkg/culture/service"
	"agrotrack/pkg/culture/serviceImp"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/metrics"
	"agrotrack/pkg/progress"
)

var now = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// homeField is the first field of every fresh test database.
const homeField uint = 1

func newService(t *testing.T) (service.CultureService, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(database.Memory, zap.NewNop())
	require.NoError(t, err)
	home := entities.Field{Name: "Parcelle 1"}
	require.NoError(t, db.Create(&home).Error)
	require.Equal(t, homeField, home.FieldID)
	svc := serviceImp.New(
		repositoryImp.New(db),
		progress.Direct(),
		catalog.Default(),
		zap.NewNop(),
		func() time.Time { return now },
	)
	return svc, db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, svc service.CultureService, status lifecycle.Status) *entities.Culture {
	t.Helper()
	c, err := svc.Create(context.Background(), &entities.Culture{
		FieldID:              homeField,
		Name:                 "Blé",
		Variety:              "Apache",
		SurfaceArea:          4.2,
		PlantedDate:          day(2024, 1, 1),
		EstimatedHarvestDate: day(2024, 5, 1),
		Health:               80,
		Status:               status,
	})
	require.NoError(t, err)
	return c
}

func TestCreate_DefaultsStatus(t *testing.T) {
	svc, _ := newService(t)
	c := seed(t, svc, "")
	assert.NotZero(t, c.ID)
	assert.Equal(t, lifecycle.StatusPlanted, c.Status)

	c2 := seed(t, svc, lifecycle.StatusGrowing)
	assert.Equal(t, lifecycle.StatusGrowing, c2.Status)
}

func TestCreate_EstimatesHarvestFromCatalog(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// unknown variety, known crop name
	c, err := svc.Create(ctx, &entities.Culture{
		FieldID:     homeField,
		Name:        "blé",
		Variety:     "Rubisko",
		PlantedDate: day(2024, 1, 1),
		SoilType:    lifecycle.SoilLoamy,
	})
	require.NoError(t, err)
	assert.True(t, day(2024, 8, 28).Equal(c.EstimatedHarvestDate), c.EstimatedHarvestDate)

	_, err = svc.Create(ctx, &entities.Culture{FieldID: homeField, Name: "Quinoa", PlantedDate: day(2024, 1, 1)})
	assert.ErrorIs(t, err, service.ErrHarvestDateRequired)
}

func TestCreate_UnknownField(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &entities.Culture{FieldID: 42, Name: "x", EstimatedHarvestDate: now})
	assert.ErrorIs(t, err, service.ErrFieldNotFound)

	// every culture belongs to a field
	_, err = svc.Create(ctx, &entities.Culture{Name: "x", EstimatedHarvestDate: now})
	assert.ErrorIs(t, err, service.ErrFieldNotFound)
	all, err := svc.List(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	f := entities.Field{Name: "Nord"}
	require.NoError(t, db.Create(&f).Error)
	c, err := svc.Create(ctx, &entities.Culture{FieldID: f.FieldID, Name: "x", EstimatedHarvestDate: now})
	require.NoError(t, err)
	assert.Equal(t, f.FieldID, c.FieldID)
}

func TestChangeStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	c := seed(t, svc, lifecycle.StatusPlanted)

	tests := []struct {
		requested string
		want      lifecycle.Status
	}{
		{"harvested", lifecycle.StatusHarvested},
		{"planted", lifecycle.StatusPlanted}, // backward
		{"Ready", lifecycle.StatusReady},
		{" growing ", lifecycle.StatusGrowing},
	}
	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			out, err := svc.ChangeStatus(ctx, c.ID, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Status)

			stored, err := svc.Get(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
			assert.Equal(t, "Apache", stored.Variety)
			assert.Equal(t, 80, stored.Health)
		})
	}
}

func TestChangeStatus_RejectsUnknownAndKeepsRecord(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	c := seed(t, svc, lifecycle.StatusGrowing)

	for _, bad := range []string{"sprouting", "", "HARVESTED!"} {
		out, err := svc.ChangeStatus(ctx, c.ID, bad)
		require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
		assert.Equal(t, lifecycle.StatusGrowing, out.Status)
	}
	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusGrowing, stored.Status)
}

func TestChangeStatus_CountsTransitions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	c := seed(t, svc, lifecycle.StatusReady)

	counter := metrics.StatusTransitions.WithLabelValues("ready", "harvested")
	before := counterValue(t, counter)
	_, err := svc.ChangeStatus(ctx, c.ID, "harvested")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, c.ID, "harvested")
	require.NoError(t, err)
	assert.Equal(t, before+1, counterValue(t, counter))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestReplace(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	c := seed(t, svc, lifecycle.StatusPlanted)

	out, err := svc.Replace(ctx, c.ID, &entities.Culture{
		Name:        "Blé tendre",
		Variety:     "Apache",
		SurfaceArea: 5,
		Health:      60,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Blé tendre", out.Name)
	assert.Equal(t, lifecycle.StatusPlanted, out.Status)
	assert.True(t, day(2024, 1, 1).Equal(out.PlantedDate))

	_, err = svc.Replace(ctx, c.ID, &entities.Culture{Name: "ignored"}, "dormant")
	require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blé tendre", stored.Name)

	out, err = svc.Replace(ctx, c.ID, &entities.Culture{Name: "Blé tendre"}, "ready")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusReady, out.Status)
}

func TestListAndDelete(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	f := entities.Field{Name: "Nord"}
	require.NoError(t, db.Create(&f).Error)

	a := seed(t, svc, lifecycle.StatusGrowing)
	_, err := svc.Replace(ctx, a.ID, &entities.Culture{FieldID: f.FieldID, Name: a.Name}, "")
	require.NoError(t, err)
	seed(t, svc, lifecycle.StatusReady)
	seed(t, svc, lifecycle.StatusGrowing)

	all, err := svc.List(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	growing := lifecycle.StatusGrowing
	list, err := svc.List(ctx, repository.Filter{Status: &growing})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(ctx, repository.Filter{FieldID: &f.FieldID, Status: &growing})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), service.ErrCultureNotFound)
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, service.ErrCultureNotFound)
}

func TestProgress(t *testing.T) {
	svc, _ := newService(t)
	c := seed(t, svc, lifecycle.StatusGrowing)

	p := svc.Progress(c)
	assert.Equal(t, 50, p.GrowthProgressPercent)
	assert.Equal(t, progress.StageGrowing, p.GrowthStage)
	assert.Equal(t, 61, p.DaysUntilHarvest)

	c.Status = lifecycle.StatusHarvested
	p = svc.Progress(c)
	assert.Equal(t, 100, p.GrowthProgressPercent)
	assert.Equal(t, progress.StageComplete, p.GrowthStage)
}
