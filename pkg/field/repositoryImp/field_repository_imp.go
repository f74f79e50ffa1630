package repositoryImp

import (
	"gorm.io/gorm"

	"agrotrack/entities"
	"agrotrack/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(f *entities.Field) error { return r.db.Create(f).Error }

func (r *fieldRepo) FindByID(id uint) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.Where("field_id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) List() ([]entities.Field, error) {
	var list []entities.Field
	return list, r.db.Order("name asc, field_id asc").Find(&list).Error
}

func (r *fieldRepo) Update(f *entities.Field) error { return r.db.Save(f).Error }

func (r *fieldRepo) Delete(id uint) error {
	res := r.db.Where("field_id = ?", id).Delete(&entities.Field{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *fieldRepo) CountCultures(id uint) (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Culture{}).Where("field_id = ?", id).Count(&n).Error
}
