package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrotrack/entities"
	cultureSvc "agrotrack/pkg/culture/service"
	"agrotrack/pkg/harvest/repository"
	svc "agrotrack/pkg/harvest/service"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/logger"
	"agrotrack/pkg/metrics"
)

const dateLayout = "2006-01-02"

type service struct {
	repo     repository.Repo
	cultures cultureSvc.CultureService
	log      *zap.Logger
}

func New(r repository.Repo, cultures cultureSvc.CultureService, log *zap.Logger) svc.Service {
	return &service{repo: r, cultures: cultures, log: log}
}

func (s *service) Create(ctx context.Context, cultureID uint, h *entities.Harvest) (*entities.Harvest, error) {
	if h.Date == "" {
		return nil, svc.ErrDateRequired
	}
	if _, err := time.Parse(dateLayout, h.Date); err != nil {
		return nil, svc.ErrInvalidDate
	}
	c, err := s.cultures.Get(ctx, cultureID)
	if err != nil {
		return nil, err
	}
	h.ID = 0
	h.CultureID = c.ID
	h.FieldID = c.FieldID
	h.NetAmount = netAmount(h)
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create harvest: %w", err)
	}

	if c.Status != lifecycle.StatusHarvested {
		if _, err := s.cultures.ChangeStatus(ctx, c.ID, lifecycle.StatusHarvested.String()); err != nil {
			// the harvest only stands together with the status change
			if derr := s.repo.Delete(ctx, h.ID); derr != nil {
				logger.FromContext(ctx, s.log).Error("orphan harvest left behind",
					zap.Uint("harvest_id", h.ID),
					zap.Uint("culture_id", c.ID),
					zap.Error(derr),
				)
			}
			return nil, fmt.Errorf("mark culture %d harvested: %w", c.ID, err)
		}
	}
	metrics.HarvestsRecorded.Inc()
	logger.FromContext(ctx, s.log).Info("harvest recorded",
		zap.Uint("harvest_id", h.ID),
		zap.Uint("culture_id", c.ID),
		zap.String("date", h.Date),
		zap.Float64("quantity_kg", h.QuantityKg),
	)
	return h, nil
}

func (s *service) ListByCulture(ctx context.Context, cultureID uint, from, to *time.Time) ([]entities.Harvest, error) {
	if _, err := s.cultures.Get(ctx, cultureID); err != nil {
		return nil, err
	}
	return s.repo.ListByCulture(ctx, cultureID, from, to)
}

func (s *service) UpdatePartial(ctx context.Context, id uint, p svc.HarvestPatch) (*entities.Harvest, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.ErrHarvestNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Date != nil {
		if _, err := time.Parse(dateLayout, *p.Date); err != nil {
			return nil, svc.ErrInvalidDate
		}
		cur.Date = *p.Date
	}
	if p.QuantityKg != nil {
		cur.QuantityKg = *p.QuantityKg
	}
	if p.QualityGrade != nil {
		cur.QualityGrade = *p.QualityGrade
	}
	if p.PricePerKg != nil {
		cur.PricePerKg = p.PricePerKg
	}
	if p.NetAmount != nil {
		cur.NetAmount = p.NetAmount
	}
	if p.Buyer != nil {
		cur.Buyer = *p.Buyer
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	// auto-calc net amount
	if v := netAmount(cur); v != nil {
		cur.NetAmount = v
	}
	return cur, s.repo.Update(ctx, cur)
}

// netAmount is quantity times price, or the stored amount when no price is known.
func netAmount(h *entities.Harvest) *float64 {
	if h.PricePerKg == nil {
		return h.NetAmount
	}
	v := h.QuantityKg * (*h.PricePerKg)
	return &v
}
