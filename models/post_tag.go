package models

// PostTag is the join row between posts and tags
type PostTag struct {
	PostID int64 `json:"post_id" db:"post_id" gorm:"primaryKey"`
	TagID  int64 `json:"tag_id" db:"tag_id" gorm:"primaryKey;index:idx_posts_tags_tag_id"`
}

func (PostTag) TableName() string {
	return "posts_tags"
}
