package models

import "time"

// Post is written by exactly one User and carries any number of Tags.
// CreatedAt is filled by GORM on insert and is never taken from user input.
type Post struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;autoCreateTime"`
	UserID    int64     `json:"user_id" db:"user_id" gorm:"not null;index:idx_posts_user_id"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Tags []Tag `json:"tags,omitempty" gorm:"many2many:posts_tags;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// TagIDs returns the ids of the tags currently loaded on the post.
func (p Post) TagIDs() []int64 {
	ids := make([]int64, 0, len(p.Tags))
	for _, tag := range p.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// HasTag reports whether the tag with the given id is loaded on the post.
func (p Post) HasTag(id int64) bool {
	for _, tag := range p.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}
