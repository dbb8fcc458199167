package models

import "strings"

// DefaultImageURL is used for users created without a profile picture.
const DefaultImageURL = "https://www.nicepng.com/png/full/888-8883726_headshot-generic-human-head-silhouette.png"

// User represents a blog author
type User struct {
	ID        int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName  string `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	ImageURL  string `json:"image_url" db:"image_url" gorm:"type:text;not null;default:'https://www.nicepng.com/png/full/888-8883726_headshot-generic-human-head-silhouette.png'"`
	Posts     []Post `json:"posts,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// NewUser builds a user, falling back to DefaultImageURL when imageURL is blank.
func NewUser(firstName, lastName, imageURL string) *User {
	if strings.TrimSpace(imageURL) == "" {
		imageURL = DefaultImageURL
	}
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		ImageURL:  imageURL,
	}
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
