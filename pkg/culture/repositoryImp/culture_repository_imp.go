package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrotrack/entities"
	"agrotrack/pkg/culture/repository"
)

type cultureRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CultureRepository { return &cultureRepo{db: db} }

func (r *cultureRepo) Create(ctx context.Context, c *entities.Culture) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cultureRepo) FindByID(ctx context.Context, id uint) (*entities.Culture, error) {
	var out entities.Culture
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cultureRepo) List(ctx context.Context, f repository.Filter) ([]entities.Culture, error) {
	q := r.db.WithContext(ctx).Model(&entities.Culture{})
	if f.FieldID != nil {
		q = q.Where("field_id = ?", *f.FieldID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	var list []entities.Culture
	return list, q.Order("planted_date asc, id asc").Find(&list).Error
}

// Update writes every column, so a full record goes back unchanged apart from
// what the caller modified.
func (r *cultureRepo) Update(ctx context.Context, c *entities.Culture) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cultureRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Culture{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cultureRepo) FieldExists(ctx context.Context, fieldID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Field{}).Where("field_id = ?", fieldID).Count(&n).Error
	return n > 0, err
}
