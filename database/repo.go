package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/blogly/models"
)

// affected turns an update or delete that matched no row into gorm.ErrRecordNotFound.
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orderByID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC")
	}
}

// replaceTags makes tags the exact tag set of post.
func replaceTags(tx *gorm.DB, post *models.Post, tags []models.Tag) error {
	association := tx.Model(post).Association("Tags")
	if len(tags) == 0 {
		return association.Clear()
	}
	return association.Replace(tags)
}
