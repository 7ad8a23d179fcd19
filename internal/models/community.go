package models

import "time"

// CommunityPost is a post on the shared feed. Reads are public; mutation is
// restricted to the post's owner.
type CommunityPost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required"`
	ImageURL  string    `json:"imageUrl" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostLike records that a user liked a post. The (user, post) pair is unique
// so a double-like cannot double-count.
type PostLike struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_post_like;type:varchar(36);not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    string    `json:"postId" gorm:"uniqueIndex:idx_post_like;type:varchar(36);not null"`
	Post      *CommunityPost `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostComment is a comment on a post, owned by the commenter rather than the
// post's author.
type PostComment struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string         `json:"userId" gorm:"index;type:varchar(36);not null"`
	User      *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    string         `json:"postId" gorm:"index;type:varchar(36);not null"`
	Post      *CommunityPost `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Content   string         `json:"content" gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FeedPost is a CommunityPost decorated with its author and read-time
// aggregates. UserLiked is relative to the caller that requested the feed and
// must never be cached across callers.
type FeedPost struct {
	CommunityPost
	Author        PublicProfile `json:"user"`
	LikesCount    int64         `json:"likesCount"`
	CommentsCount int64         `json:"commentsCount"`
	UserLiked     bool          `json:"userLiked"`
}

// CommentWithAuthor is a PostComment decorated with the commenter's public
// profile.
type CommentWithAuthor struct {
	PostComment
	Author PublicProfile `json:"user"`
}
