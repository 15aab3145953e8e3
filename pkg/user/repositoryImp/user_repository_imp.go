package repositoryImp

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vita/entities"
	"vita/pkg/user/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) FindOrCreate(userID string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("user_id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = entities.User{UserID: userID, Equipment: "None"}
		if err := r.db.Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(u *entities.User) error {
	return r.db.Save(u).Error
}

func (r *userRepo) SetCurrentPlan(userID string, plan datatypes.JSON, versionID uint) error {
	return r.db.Model(&entities.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"current_plan":            plan,
			"current_plan_version_id": versionID,
		}).Error
}
