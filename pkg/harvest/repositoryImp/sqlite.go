package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"agrotrack/entities"
	"agrotrack/pkg/harvest/repository"
)

const dateLayout = "2006-01-02"

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, h *entities.Harvest) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *sqliteRepo) Update(ctx context.Context, h *entities.Harvest) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *sqliteRepo) FindByID(ctx context.Context, id uint) (*entities.Harvest, error) {
	var out entities.Harvest
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the row for good, bypassing the soft-delete column.
func (r *sqliteRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&entities.Harvest{}, id).Error
}

// ListByCulture filters on the stored YYYY-MM-DD string, which sorts like the
// date it encodes.
func (r *sqliteRepo) ListByCulture(ctx context.Context, cultureID uint, from, to *time.Time) ([]entities.Harvest, error) {
	q := r.db.WithContext(ctx).Model(&entities.Harvest{}).Where("culture_id = ?", cultureID)
	if from != nil {
		q = q.Where("date >= ?", from.Format(dateLayout))
	}
	if to != nil {
		q = q.Where("date <= ?", to.Format(dateLayout))
	}
	var list []entities.Harvest
	return list, q.Order("date asc, id asc").Find(&list).Error
}
