package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/blogly/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindByID returns a post with its author and tags
func (r *PostRepo) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags", orderByID("tags")).
		First(&post, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find post by id %d: %w", id, err)
	}
	return &post, nil
}

// Add inserts a post and links it to exactly tags, in one transaction
func (r *PostRepo) Add(ctx context.Context, post *models.Post, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post, tags)
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	post.Tags = tags
	return nil
}

// Update overwrites title and content and replaces the tag set, in one transaction
func (r *PostRepo) Update(ctx context.Context, post *models.Post, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(post).Select("title", "content").Updates(post)
		if err := affected(result); err != nil {
			return err
		}
		return replaceTags(tx, post, tags)
	})
	if err != nil {
		return fmt.Errorf("failed to update post id %d: %w", post.ID, err)
	}
	post.Tags = tags
	return nil
}

// Delete removes a post and its tag links
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Post{}, id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete post id %d: %w", id, err)
	}
	return nil
}
