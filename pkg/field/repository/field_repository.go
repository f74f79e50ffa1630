package repository

import "agrotrack/entities"

type FieldRepository interface {
	Create(f *entities.Field) error
	FindByID(id uint) (*entities.Field, error)
	List() ([]entities.Field, error)
	Update(f *entities.Field) error
	Delete(id uint) error
	CountCultures(id uint) (int64, error)
}
