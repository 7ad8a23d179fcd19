package models

import "time"

// AIConversation is one exchange with the AI companion, stored per user.
type AIConversation struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message   string    `json:"message" gorm:"type:text;not null" validate:"required"`
	Response  string    `json:"response" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
