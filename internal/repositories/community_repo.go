package repositories

import "mindbloom/internal/models"

// CommunityRepository defines the interface for feed data access. Post reads
// are public; mutation methods are scoped to the acting user.
type CommunityRepository interface {
	CreatePost(post *models.CommunityPost) error
	GetPostByID(id string) (*models.CommunityPost, error)
	// ListFeed returns posts newest first with author and read-time aggregate
	// counts. callerID may be empty for anonymous callers, in which case
	// UserLiked is false for every post.
	ListFeed(limit, offset int, callerID string) ([]models.FeedPost, error)
	DeletePostForUser(id, userID string) error

	// Like is idempotent; liking twice leaves a single row.
	Like(userID, postID string) error
	// Unlike removes the caller's like if present; unliking a never-liked
	// post is not an error.
	Unlike(userID, postID string) error

	CreateComment(comment *models.PostComment) error
	ListComments(postID string) ([]models.CommentWithAuthor, error)
}
