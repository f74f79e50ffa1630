package serviceImp

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrotrack/entities"
	repo "agrotrack/pkg/field/repository"
	"agrotrack/pkg/field/service"
)

type fieldSvc struct {
	r   repo.FieldRepository
	log *zap.Logger
}

func NewFieldService(r repo.FieldRepository, log *zap.Logger) service.FieldService {
	return &fieldSvc{r: r, log: log}
}

func (s *fieldSvc) CreateField(f *entities.Field) (*entities.Field, error) {
	f.FieldID = 0
	if err := s.r.Create(f); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	s.log.Info("field created", zap.Uint("field_id", f.FieldID), zap.String("name", f.Name))
	return f, nil
}

func (s *fieldSvc) GetFieldByID(id uint) (*entities.Field, error) {
	f, err := s.r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrFieldNotFound
	}
	return f, err
}

func (s *fieldSvc) ListFields() ([]entities.Field, error) {
	return s.r.List()
}

func (s *fieldSvc) UpdateField(id uint, in *entities.Field) (*entities.Field, error) {
	cur, err := s.GetFieldByID(id)
	if err != nil {
		return nil, err
	}
	cur.Name = in.Name
	cur.Location = in.Location
	cur.AreaHa = in.AreaHa
	cur.SoilType = in.SoilType
	cur.Notes = in.Notes
	if err := s.r.Update(cur); err != nil {
		return nil, fmt.Errorf("update field %d: %w", id, err)
	}
	return cur, nil
}

// DeleteField refuses while any culture still points at the field.
func (s *fieldSvc) DeleteField(id uint) error {
	if _, err := s.GetFieldByID(id); err != nil {
		return err
	}
	n, err := s.r.CountCultures(id)
	if err != nil {
		return fmt.Errorf("count cultures of field %d: %w", id, err)
	}
	if n > 0 {
		return fmt.Errorf("%w (%d)", service.ErrFieldInUse, n)
	}
	if err := s.r.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.ErrFieldNotFound
		}
		return fmt.Errorf("delete field %d: %w", id, err)
	}
	s.log.Info("field deleted", zap.Uint("field_id", id))
	return nil
}
