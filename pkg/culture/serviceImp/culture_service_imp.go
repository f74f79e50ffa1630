package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrotrack/entities"
	"agrotrack/pkg/catalog"
	"agrotrack/pkg/culture/repository"
	"agrotrack/pkg/culture/service"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/logger"
	"agrotrack/pkg/metrics"
	"agrotrack/pkg/progress"
)

type cultureSvc struct {
	repo    repository.CultureRepository
	calc    progress.Calculator
	catalog catalog.Estimator
	log     *zap.Logger
	now     func() time.Time
}

// New wires the culture service. now supplies the reference instant for
// progress; pass a clock already set to the farm's time zone.
func New(
	r repository.CultureRepository,
	calc progress.Calculator,
	est catalog.Estimator,
	log *zap.Logger,
	now func() time.Time,
) service.CultureService {
	if now == nil {
		now = time.Now
	}
	return &cultureSvc{repo: r, calc: calc, catalog: est, log: log, now: now}
}

func (s *cultureSvc) Create(ctx context.Context, in *entities.Culture) (*entities.Culture, error) {
	if in.FieldID == 0 {
		return nil, service.ErrFieldNotFound
	}
	ok, err := s.repo.FieldExists(ctx, in.FieldID)
	if err != nil {
		return nil, fmt.Errorf("check field %d: %w", in.FieldID, err)
	}
	if !ok {
		return nil, service.ErrFieldNotFound
	}
	in.ID = 0
	if !in.Status.IsValid() {
		in.Status = lifecycle.InitialStatus
	}
	if in.EstimatedHarvestDate.IsZero() {
		est, err := s.estimateHarvest(in)
		if err != nil {
			return nil, err
		}
		in.EstimatedHarvestDate = est
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, fmt.Errorf("create culture: %w", err)
	}
	logger.FromContext(ctx, s.log).Info("culture created",
		zap.Uint("culture_id", in.ID),
		zap.Uint("field_id", in.FieldID),
		zap.String("status", in.Status.String()),
		zap.Time("estimated_harvest", in.EstimatedHarvestDate),
	)
	return in, nil
}

// estimateHarvest tries the variety first, then the crop name.
func (s *cultureSvc) estimateHarvest(c *entities.Culture) (time.Time, error) {
	for _, crop := range []string{c.Variety, c.Name} {
		if crop == "" {
			continue
		}
		t, err := s.catalog.EstimateHarvest(crop, c.SoilType, c.PlantedDate)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, catalog.ErrUnknownCrop) {
			return time.Time{}, err
		}
	}
	return time.Time{}, service.ErrHarvestDateRequired
}

func (s *cultureSvc) Get(ctx context.Context, id uint) (*entities.Culture, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrCultureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find culture %d: %w", id, err)
	}
	return c, nil
}

func (s *cultureSvc) List(ctx context.Context, f repository.Filter) ([]entities.Culture, error) {
	return s.repo.List(ctx, f)
}

func (s *cultureSvc) Replace(ctx context.Context, id uint, in *entities.Culture, requestedStatus string) (*entities.Culture, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := cur.Status
	to := from
	if requestedStatus != "" {
		if to, err = lifecycle.TransitionString(from, requestedStatus); err != nil {
			return cur, err
		}
	}
	if in.FieldID != 0 && in.FieldID != cur.FieldID {
		ok, err := s.repo.FieldExists(ctx, in.FieldID)
		if err != nil {
			return nil, fmt.Errorf("check field %d: %w", in.FieldID, err)
		}
		if !ok {
			return nil, service.ErrFieldNotFound
		}
		cur.FieldID = in.FieldID
	}

	cur.Name = in.Name
	cur.Variety = in.Variety
	cur.SurfaceArea = in.SurfaceArea
	if !in.PlantedDate.IsZero() {
		cur.PlantedDate = in.PlantedDate
	}
	if !in.EstimatedHarvestDate.IsZero() {
		cur.EstimatedHarvestDate = in.EstimatedHarvestDate
	}
	cur.Health = in.Health
	cur.IrrigationLevel = in.IrrigationLevel
	cur.SoilType = in.SoilType
	cur.Notes = in.Notes
	cur.Status = to

	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("update culture %d: %w", id, err)
	}
	s.recordTransition(ctx, cur.ID, from, to)
	return cur, nil
}

func (s *cultureSvc) ChangeStatus(ctx context.Context, id uint, requested string) (*entities.Culture, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := cur.Status
	to, err := lifecycle.TransitionString(from, requested)
	if err != nil {
		logger.FromContext(ctx, s.log).Info("status change rejected",
			zap.Uint("culture_id", id),
			zap.String("requested", requested),
		)
		return cur, err
	}
	cur.Status = to
	if err := s.repo.Update(ctx, cur); err != nil {
		cur.Status = from
		return cur, fmt.Errorf("update culture %d: %w", id, err)
	}
	s.recordTransition(ctx, cur.ID, from, to)
	return cur, nil
}

func (s *cultureSvc) recordTransition(ctx context.Context, id uint, from, to lifecycle.Status) {
	if from == to {
		return
	}
	metrics.StatusTransitions.WithLabelValues(from.String(), to.String()).Inc()
	logger.FromContext(ctx, s.log).Info("culture status changed",
		zap.Uint("culture_id", id),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}

func (s *cultureSvc) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrCultureNotFound
	}
	if err != nil {
		return fmt.Errorf("delete culture %d: %w", id, err)
	}
	logger.FromContext(ctx, s.log).Info("culture deleted", zap.Uint("culture_id", id))
	return nil
}

func (s *cultureSvc) Progress(c *entities.Culture) progress.Progress {
	return s.calc.Progress(progress.FromCulture(c), s.now())
}
