package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every model in dependency order.
func All() []any {
	return []any{&User{}, &Post{}, &Tag{}, &PostTag{}}
}

// Tables maps each table name to its model.
func Tables() map[string]any {
	return map[string]any{
		User{}.TableName():    User{},
		Post{}.TableName():    Post{},
		Tag{}.TableName():     Tag{},
		PostTag{}.TableName(): PostTag{},
	}
}

// SetupJoinTables registers PostTag as the posts_tags join model on both sides of
// the many-to-many relation. It must run before any query touching Post.Tags or Tag.Posts.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return fmt.Errorf("setup posts_tags join table for posts: %w", err)
	}
	if err := db.SetupJoinTable(&Tag{}, "Posts", &PostTag{}); err != nil {
		return fmt.Errorf("setup posts_tags join table for tags: %w", err)
	}
	return nil
}

// Migrate creates or updates the users, posts, tags and posts_tags tables.
func Migrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
