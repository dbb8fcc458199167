package models

// Tag is a globally unique label shared between posts
type Tag struct {
	ID    int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tags_name"`
	Posts []Post `json:"posts,omitempty" gorm:"many2many:posts_tags;constraint:OnDelete:CASCADE"`
}

func (Tag) TableName() string {
	return "tags"
}
