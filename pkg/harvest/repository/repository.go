package repository

import (
	"context"
	"time"

	"agrotrack/entities"
)

type Repo interface {
	Create(ctx context.Context, h *entities.Harvest) error
	Update(ctx context.Context, h *entities.Harvest) error
	FindByID(ctx context.Context, id uint) (*entities.Harvest, error)
	Delete(ctx context.Context, id uint) error
	ListByCulture(ctx context.Context, cultureID uint, from, to *time.Time) ([]entities.Harvest, error)
}
