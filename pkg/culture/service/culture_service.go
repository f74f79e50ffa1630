package service

import (
	"context"
	"errors"

	"agrotrack/entities"
	"agrotrack/pkg/culture/repository"
	"agrotrack/pkg/progress"
)

var (
	ErrCultureNotFound = errors.New("culture not found")
	ErrFieldNotFound   = errors.New("field not found")
	// ErrHarvestDateRequired is returned on create when no estimated harvest
	// date was given and the crop catalog cannot suggest one.
	ErrHarvestDateRequired = errors.New("estimatedHarvestDate is required for this crop")
)

type CultureService interface {
	// Create requires an existing field; a zero FieldID is ErrFieldNotFound.
	Create(ctx context.Context, in *entities.Culture) (*entities.Culture, error)
	Get(ctx context.Context, id uint) (*entities.Culture, error)
	List(ctx context.Context, f repository.Filter) ([]entities.Culture, error)
	// Replace overwrites the editable attributes of a culture. An empty
	// requestedStatus keeps the current one; an invalid one rejects the whole
	// update and returns the stored record with lifecycle.ErrInvalidStatus.
	Replace(ctx context.Context, id uint, in *entities.Culture, requestedStatus string) (*entities.Culture, error)
	// ChangeStatus persists the record with only its status replaced.
	ChangeStatus(ctx context.Context, id uint, requested string) (*entities.Culture, error)
	Delete(ctx context.Context, id uint) error
	Progress(c *entities.Culture) progress.Progress
}
