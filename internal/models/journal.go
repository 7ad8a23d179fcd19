package models

import "time"

// JournalEntry is a private journal entry owned by exactly one user. Mood is
// filled in by the text classifier when the entry is created or its content
// changes.
type JournalEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required"`
	Mood      string    `json:"mood" gorm:"type:varchar(20)"`
	Tags      string    `json:"tags" gorm:"type:text"` // comma-joined
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
