package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/blogly/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags in insertion order
func (r *TagRepo) FindAll(ctx context.Context) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	return tags, nil
}

// FindByID returns a tag with the posts that carry it
func (r *TagRepo) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Preload("Posts", orderByID("posts")).
		First(&tag, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tag by id %d: %w", id, err)
	}
	return &tag, nil
}

// FindByIDs returns the tags whose id is in ids. Unknown ids are skipped.
func (r *TagRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags by ids %v: %w", ids, err)
	}
	return tags, nil
}

// Add inserts a new tag; duplicate names are rejected by the store
func (r *TagRepo) Add(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Update renames an existing tag
func (r *TagRepo) Update(ctx context.Context, tag *models.Tag) error {
	result := r.db.WithContext(ctx).Model(tag).Select("name").Updates(tag)
	if err := affected(result); err != nil {
		return fmt.Errorf("failed to update tag id %d: %w", tag.ID, err)
	}
	return nil
}

// Delete removes a tag and its post links
func (r *TagRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Tag{}, id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete tag id %d: %w", id, err)
	}
	return nil
}
