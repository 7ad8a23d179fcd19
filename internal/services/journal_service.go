package services

import (
	"context"
	"encoding/json"
	"log"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/pkg/genai"
	"mindbloom/pkg/rabbitmq"
)

// MoodClassifier classifies the emotional tone of text. Implemented by
// genai.Client; implementations must return a usable (fallback) analysis
// rather than failing.
type MoodClassifier interface {
	AnalyzeMood(ctx context.Context, text string) *genai.MoodAnalysis
}

// JournalService handles journal entries and the derived-mood enrichment.
type JournalService struct {
	journalRepo repositories.JournalRepository
	moodRepo    repositories.MoodRepository
	classifier  MoodClassifier
	mqClient    *rabbitmq.Client
}

// NewJournalService creates a new JournalService. mqClient may be nil to
// disable event publishing.
func NewJournalService(journalRepo repositories.JournalRepository, moodRepo repositories.MoodRepository, classifier MoodClassifier, mqClient *rabbitmq.Client) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		moodRepo:    moodRepo,
		classifier:  classifier,
		mqClient:    mqClient,
	}
}

// Create saves a new entry for the user. The entry's mood comes from the
// classifier; classifier failure falls back to neutral and never fails the
// save. A derived mood-history record and a journal.created event are written
// best-effort.
func (s *JournalService) Create(ctx context.Context, userID, title, content, tags string) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    tags,
		Mood:    s.classify(ctx, content),
	}
	if err := s.journalRepo.Create(entry); err != nil {
		return nil, err
	}

	noteTitle := title
	if noteTitle == "" {
		noteTitle = "Untitled entry"
	}
	derived := &models.MoodEntry{
		UserID: userID,
		Mood:   entry.Mood,
		Notes:  "From journal: " + noteTitle,
	}
	if err := s.moodRepo.Create(derived); err != nil {
		// The entry is already saved; losing the derived record is accepted.
		log.Printf("failed to create derived mood entry for journal %s: %v", entry.ID, err)
	}

	s.publish("journal.created", map[string]interface{}{
		"entryId": entry.ID,
		"userId":  userID,
		"mood":    entry.Mood,
	})
	return entry, nil
}

// List returns the user's entries, newest first.
func (s *JournalService) List(userID string) ([]models.JournalEntry, error) {
	return s.journalRepo.ListByUser(userID)
}

// JournalUpdate carries the mutable entry fields; nil means leave as is.
type JournalUpdate struct {
	Title   *string
	Content *string
	Tags    *string
}

// Update applies a partial update to the caller's entry. Changed content is
// re-classified under the same fallback policy. A foreign or missing id is
// ErrNotFound either way.
func (s *JournalService) Update(ctx context.Context, userID, id string, update JournalUpdate) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetForUser(id, userID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		entry.Title = *update.Title
	}
	if update.Tags != nil {
		entry.Tags = *update.Tags
	}
	if update.Content != nil && *update.Content != entry.Content {
		entry.Content = *update.Content
		entry.Mood = s.classify(ctx, entry.Content)
	}
	if err := s.journalRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the caller's entry; a foreign id behaves like a missing one.
func (s *JournalService) Delete(userID, id string) error {
	return s.journalRepo.DeleteForUser(id, userID)
}

// classify runs the mood classifier and clamps unexpected values to neutral.
func (s *JournalService) classify(ctx context.Context, content string) string {
	analysis := s.classifier.AnalyzeMood(ctx, content)
	if analysis == nil || !models.ValidMoods[analysis.Mood] {
		return models.MoodNeutral
	}
	return analysis.Mood
}

func (s *JournalService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
