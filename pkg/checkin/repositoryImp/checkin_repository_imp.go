package repositoryImp

import (
	"gorm.io/gorm"

	"vita/entities"
	"vita/pkg/checkin/repository"
)

type checkInRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CheckInRepository { return &checkInRepo{db} }

func (r *checkInRepo) Create(ci *entities.CheckIn) error { return r.db.Create(ci).Error }

func (r *checkInRepo) ListByUser(userID string) ([]entities.CheckIn, error) {
	var out []entities.CheckIn
	if err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
