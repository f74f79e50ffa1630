package service

import (
	"errors"

	"agrotrack/entities"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrFieldInUse    = errors.New("field still has cultures")
)

type FieldService interface {
	CreateField(f *entities.Field) (*entities.Field, error)
	GetFieldByID(id uint) (*entities.Field, error)
	ListFields() ([]entities.Field, error)
	UpdateField(id uint, in *entities.Field) (*entities.Field, error)
	DeleteField(id uint) error
}
