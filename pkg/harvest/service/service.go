package service

import (
	"context"
	"errors"
	"time"

	"agrotrack/entities"
)

var (
	ErrDateRequired    = errors.New("date is required")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrHarvestNotFound = errors.New("harvest not found")
)

type Service interface {
	// Create records a harvest for a culture and moves the culture to
	// harvested. When the culture cannot be moved the harvest is removed
	// again and nothing is recorded.
	Create(ctx context.Context, cultureID uint, in *entities.Harvest) (*entities.Harvest, error)
	ListByCulture(ctx context.Context, cultureID uint, from, to *time.Time) ([]entities.Harvest, error)
	UpdatePartial(ctx context.Context, id uint, patch HarvestPatch) (*entities.Harvest, error)
}

// HarvestPatch carries the fields to change; nil members are left alone.
// NetAmount is only kept when the harvest has no price per kg: once a price
// is known the amount is recomputed as quantity times price and a value sent
// here is ignored.
type HarvestPatch struct {
	Date         *string  `json:"date"`
	QuantityKg   *float64 `json:"quantityKg" validate:"omitempty,gte=0"`
	QualityGrade *string  `json:"qualityGrade" validate:"omitempty,oneof=A B C"`
	PricePerKg   *float64 `json:"pricePerKg" validate:"omitempty,gte=0"`
	NetAmount    *float64 `json:"netAmount"`
	Buyer        *string  `json:"buyer"`
	Notes        *string  `json:"notes"`
}
