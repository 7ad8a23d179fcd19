package repositories

import (
	"errors"
	"fmt"

	"mindbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommunityRepository is a GORM implementation of CommunityRepository.
type GORMCommunityRepository struct {
	db *gorm.DB
}

// NewGORMCommunityRepository creates a new instance of GORMCommunityRepository.
func NewGORMCommunityRepository(db *gorm.DB) *GORMCommunityRepository {
	return &GORMCommunityRepository{db: db}
}

// CreatePost creates a new community post.
func (r *GORMCommunityRepository) CreatePost(post *models.CommunityPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create community post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a post without ownership filtering; the feed is
// publicly readable.
func (r *GORMCommunityRepository) GetPostByID(id string) (*models.CommunityPost, error) {
	var post models.CommunityPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return &post, nil
}

type postCount struct {
	PostID string
	N      int64
}

// ListFeed loads a page of posts and decorates each with its author, like and
// comment counts computed over the child tables, and the caller-relative
// UserLiked flag.
func (r *GORMCommunityRepository) ListFeed(limit, offset int, callerID string) ([]models.FeedPost, error) {
	var posts []models.CommunityPost
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list community posts: %w", err)
	}
	if len(posts) == 0 {
		return []models.FeedPost{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}

	var likeCounts []postCount
	err = r.db.Model(&models.PostLike{}).
		Select("post_id, count(*) as n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	var commentCounts []postCount
	err = r.db.Model(&models.PostComment{}).
		Select("post_id, count(*) as n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	var authors []models.User
	if err := r.db.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to load post authors: %w", err)
	}

	// Likes by the caller, only when the caller is authenticated.
	likedByCaller := make(map[string]bool)
	if callerID != "" {
		var likes []models.PostLike
		err := r.db.Where("user_id = ? AND post_id IN ?", callerID, postIDs).Find(&likes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load caller likes: %w", err)
		}
		for _, l := range likes {
			likedByCaller[l.PostID] = true
		}
	}

	likesByPost := make(map[string]int64, len(likeCounts))
	for _, c := range likeCounts {
		likesByPost[c.PostID] = c.N
	}
	commentsByPost := make(map[string]int64, len(commentCounts))
	for _, c := range commentCounts {
		commentsByPost[c.PostID] = c.N
	}
	authorsByID := make(map[string]models.User, len(authors))
	for _, a := range authors {
		authorsByID[a.ID] = a
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		author := authorsByID[p.UserID]
		feed = append(feed, models.FeedPost{
			CommunityPost: p,
			Author:        author.Public(),
			LikesCount:    likesByPost[p.ID],
			CommentsCount: commentsByPost[p.ID],
			UserLiked:     likedByCaller[p.ID],
		})
	}
	return feed, nil
}

// DeletePostForUser deletes a post only if the user owns it.
func (r *GORMCommunityRepository) DeletePostForUser(id, userID string) error {
	res := r.db.Delete(&models.CommunityPost{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Like records the caller's like. FirstOrCreate keeps the operation
// idempotent under the unique (user, post) index.
func (r *GORMCommunityRepository) Like(userID, postID string) error {
	like := models.PostLike{
		ID:     uuid.New().String(),
		UserID: userID,
		PostID: postID,
	}
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		FirstOrCreate(&like).Error
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

// Unlike removes the caller's like. Zero rows affected is fine: the post was
// never liked.
func (r *GORMCommunityRepository) Unlike(userID, postID string) error {
	err := r.db.Delete(&models.PostLike{}, "user_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

// CreateComment creates a new comment.
func (r *GORMCommunityRepository) CreateComment(comment *models.PostComment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListComments returns a post's comments oldest first, each with the
// commenter's public profile.
func (r *GORMCommunityRepository) ListComments(postID string) ([]models.CommentWithAuthor, error) {
	var comments []models.PostComment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if len(comments) == 0 {
		return []models.CommentWithAuthor{}, nil
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	var authors []models.User
	if err := r.db.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment authors: %w", err)
	}
	authorsByID := make(map[string]models.User, len(authors))
	for _, a := range authors {
		authorsByID[a.ID] = a
	}

	out := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		author := authorsByID[c.UserID]
		out = append(out, models.CommentWithAuthor{
			PostComment: c,
			Author:      author.Public(),
		})
	}
	return out, nil
}
