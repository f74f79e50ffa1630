package repository

import (
	"context"

	"agrotrack/entities"
	"agrotrack/pkg/lifecycle"
)

// Filter narrows List; nil members match everything.
type Filter struct {
	FieldID *uint
	Status  *lifecycle.Status
}

type CultureRepository interface {
	Create(ctx context.Context, c *entities.Culture) error
	FindByID(ctx context.Context, id uint) (*entities.Culture, error)
	List(ctx context.Context, f Filter) ([]entities.Culture, error)
	Update(ctx context.Context, c *entities.Culture) error
	Delete(ctx context.Context, id uint) error
	FieldExists(ctx context.Context, fieldID uint) (bool, error)
}
