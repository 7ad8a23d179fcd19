package models

import "time"

// Moods recognized by the tracker and the text classifier.
const (
	MoodVeryHappy = "very_happy"
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodVerySad   = "very_sad"
)

// ValidMoods maps every recognized mood value for quick membership checks.
var ValidMoods = map[string]bool{
	MoodVeryHappy: true,
	MoodHappy:     true,
	MoodNeutral:   true,
	MoodSad:       true,
	MoodVerySad:   true,
}

// MoodEntry is a single point in a user's mood history, recorded either
// directly or derived from a journal entry.
type MoodEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Mood      string    `json:"mood" gorm:"type:varchar(20);not null" validate:"required,oneof=very_happy happy neutral sad very_sad"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}
