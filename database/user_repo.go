package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/blogly/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users in insertion order
func (r *UserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// FindByID returns a user together with their posts
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Posts", orderByID("posts")).
		First(&user, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// Add inserts a new user and sets its ID
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update overwrites the name and image of an existing user
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(user).
		Select("first_name", "last_name", "image_url").
		Updates(user)
	if err := affected(result); err != nil {
		return fmt.Errorf("failed to update user id %d: %w", user.ID, err)
	}
	return nil
}

// Delete removes a user, their posts and the tag links of those posts
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.User{}, id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete user id %d: %w", id, err)
	}
	return nil
}
