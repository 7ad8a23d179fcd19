package models

import "time"

// BookReading tracks a user's position and display settings for one book.
// One row per (user, book).
type BookReading struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"userId" gorm:"uniqueIndex:idx_book_reading;type:varchar(36);not null"`
	User         *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID       string    `json:"bookId" gorm:"uniqueIndex:idx_book_reading;type:varchar(64);not null" validate:"required"`
	CurrentPage  int       `json:"currentPage" gorm:"default:1"`
	TotalPages   int       `json:"totalPages"`
	ReadingTheme string    `json:"readingTheme" gorm:"type:varchar(20);default:light" validate:"omitempty,oneof=light dark sepia"`
	FontSize     int       `json:"fontSize" gorm:"default:16"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BookBookmark marks a page in a book for its owner.
type BookBookmark struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User       *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID     string    `json:"bookId" gorm:"index;type:varchar(64);not null" validate:"required"`
	PageNumber int       `json:"pageNumber" gorm:"not null" validate:"required,gt=0"`
	Title      string    `json:"title" gorm:"type:varchar(255)"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookHighlight is a highlighted passage in a book, owned by the reader.
type BookHighlight struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User       *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID     string    `json:"bookId" gorm:"index;type:varchar(64);not null" validate:"required"`
	PageNumber int       `json:"pageNumber" gorm:"not null" validate:"required,gt=0"`
	Text       string    `json:"text" gorm:"type:text;not null" validate:"required"`
	Color      string    `json:"color" gorm:"type:varchar(20);default:yellow" validate:"omitempty,oneof=yellow green blue pink"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
}
