package repository

import (
	"context"

	"gorm.io/gorm"

	"leetboard/internal/model"
)

type TrackedUserRepository interface {
	Create(ctx context.Context, user *model.TrackedUser) error
	FindByUsername(ctx context.Context, username string) (*model.TrackedUser, error)
	// FindAll returns users in the order they were added; the leaderboard
	// relies on this as its fetch order.
	FindAll(ctx context.Context) ([]model.TrackedUser, error)
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, username string) (int64, error)
	// ReplaceAll swaps the whole list in one transaction.
	ReplaceAll(ctx context.Context, users []model.TrackedUser) error
}

type trackedUserRepository struct {
	db *gorm.DB
}

func NewTrackedUserRepository(db *gorm.DB) TrackedUserRepository {
	return &trackedUserRepository{db: db}
}

func (r *trackedUserRepository) Create(ctx context.Context, user *model.TrackedUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *trackedUserRepository) FindByUsername(ctx context.Context, username string) (*model.TrackedUser, error) {
	var user model.TrackedUser
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *trackedUserRepository) FindAll(ctx context.Context) ([]model.TrackedUser, error) {
	var users []model.TrackedUser
	if err := r.db.WithContext(ctx).
		Order("added_at asc").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *trackedUserRepository) Delete(ctx context.Context, username string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.TrackedUser{}, "username = ?", username)
	return result.RowsAffected, result.Error
}

func (r *trackedUserRepository) ReplaceAll(ctx context.Context, users []model.TrackedUser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.TrackedUser{}).Error; err != nil {
			return err
		}

		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
