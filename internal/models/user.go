package models

import "gorm.io/gorm"

// User represents a MindBloom account. The password column holds a bcrypt
// hash and stays empty for Google-only accounts.
type User struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email           string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password        string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Name            string `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ProfileImageURL string `json:"profileImageUrl" gorm:"type:varchar(512)"`
	Theme           string `json:"theme" gorm:"type:varchar(20);default:dark"`
	Language        string `json:"language" gorm:"type:varchar(10);default:en"`
	gorm.Model      `json:"-"`
}

// PublicProfile is the projection of a User that is safe to return to any
// caller. It never carries the password hash.
type PublicProfile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl"`
	Theme           string `json:"theme"`
	Language        string `json:"language"`
}

// Public returns the public-safe projection of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURL,
		Theme:           u.Theme,
		Language:        u.Language,
	}
}
