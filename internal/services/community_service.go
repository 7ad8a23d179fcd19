package services

import (
	"encoding/json"
	"log"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/pkg/rabbitmq"
)

// CommunityService handles the shared feed: posts, likes, and comments.
type CommunityService struct {
	communityRepo repositories.CommunityRepository
	mqClient      *rabbitmq.Client
}

// NewCommunityService creates a new CommunityService. mqClient may be nil to
// disable event publishing.
func NewCommunityService(communityRepo repositories.CommunityRepository, mqClient *rabbitmq.Client) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, mqClient: mqClient}
}

// Feed returns a page of posts with read-time aggregates. callerID is empty
// for anonymous callers; UserLiked is computed per caller and never reused
// across callers.
func (s *CommunityService) Feed(limit, offset int, callerID string) ([]models.FeedPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.communityRepo.ListFeed(limit, offset, callerID)
}

// CreatePost publishes a new post by the caller.
func (s *CommunityService) CreatePost(userID, content, imageURL string) (*models.CommunityPost, error) {
	post := &models.CommunityPost{
		UserID:   userID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.communityRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the caller's own post. A post owned by someone else is
// indistinguishable from a missing one.
func (s *CommunityService) DeletePost(userID, postID string) error {
	return s.communityRepo.DeletePostForUser(postID, userID)
}

// Like records the caller's like on a post. Liking twice is a no-op; liking a
// missing post is ErrNotFound.
func (s *CommunityService) Like(userID, postID string) error {
	if _, err := s.communityRepo.GetPostByID(postID); err != nil {
		return err
	}
	if err := s.communityRepo.Like(userID, postID); err != nil {
		return err
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]interface{}{
			"postId": postID,
			"userId": userID,
		})
		if err == nil {
			if err := s.mqClient.Publish("post.liked", body); err != nil {
				log.Printf("Warning: failed to publish post.liked event: %v", err)
			}
		}
	}
	return nil
}

// Unlike removes the caller's like. Unliking a post that was never liked is
// not an error.
func (s *CommunityService) Unlike(userID, postID string) error {
	return s.communityRepo.Unlike(userID, postID)
}

// Comments returns a post's comments oldest first.
func (s *CommunityService) Comments(postID string) ([]models.CommentWithAuthor, error) {
	return s.communityRepo.ListComments(postID)
}

// CreateComment adds the caller's comment to a post. The comment belongs to
// the commenter, not the post owner.
func (s *CommunityService) CreateComment(userID, postID, content string) (*models.PostComment, error) {
	if _, err := s.communityRepo.GetPostByID(postID); err != nil {
		return nil, err
	}
	comment := &models.PostComment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.communityRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
