package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"vita/entities"
	"vita/pkg/plan/repository"
)

type planVersionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanVersionRepository { return &planVersionRepo{db} }

func (r *planVersionRepo) LatestByUser(userID string) (*entities.PlanVersion, error) {
	var pv entities.PlanVersion
	err := r.db.Where("user_id = ?", userID).
		Order("version DESC").
		Select("id", "user_id", "version", "plan", "check_in_snapshot").
		First(&pv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pv, nil
}

func (r *planVersionRepo) Create(pv *entities.PlanVersion) error {
	if err := r.db.Create(pv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateVersion
		}
		return err
	}
	return nil
}

func (r *planVersionRepo) ListByUser(userID string, beforeVersion *int, limit int) ([]entities.PlanVersion, error) {
	q := r.db.Where("user_id = ?", userID)
	if beforeVersion != nil {
		q = q.Where("version < ?", *beforeVersion)
	}
	var out []entities.PlanVersion
	if err := q.Order("version DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planVersionRepo) CountSince(userID string, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&entities.PlanVersion{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}
