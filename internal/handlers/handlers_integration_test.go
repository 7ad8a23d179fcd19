package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"testing"

	"mindbloom/internal/handlers"
	"mindbloom/internal/middleware"
	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/internal/services"
	"mindbloom/pkg/genai"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubClassifier stands in for the Gemini client on the journal path.
type stubClassifier struct {
	mood string
}

func (s *stubClassifier) AnalyzeMood(ctx context.Context, text string) *genai.MoodAnalysis {
	return &genai.MoodAnalysis{Mood: s.mood, Confidence: 0.9}
}

// stubCompanion stands in for the Gemini client on the chat path.
type stubCompanion struct{}

func (s *stubCompanion) Chat(ctx context.Context, userMessage, priorContext string) *genai.GenieResponse {
	return &genai.GenieResponse{Message: "You are doing great.", Tone: "supportive"}
}

// stubQuoter stands in for the Gemini client on the quote path.
type stubQuoter struct{}

func (s *stubQuoter) MotivationalQuote(ctx context.Context) *genai.Quote {
	return &genai.Quote{Quote: "Keep going.", Author: "MindBloom", Theme: "perseverance"}
}

var (
	app        *fiber.App
	classifier *stubClassifier
)

// setupApp builds the full route tree on an in-memory SQLite database, with
// the model clients stubbed out.
func setupApp() (*fiber.App, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.JournalEntry{},
		&models.MoodEntry{},
		&models.CommunityPost{},
		&models.PostLike{},
		&models.PostComment{},
		&models.AIConversation{},
		&models.BookReading{},
		&models.BookBookmark{},
		&models.BookHighlight{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	journalRepo := repositories.NewGORMJournalRepository(db)
	moodRepo := repositories.NewGORMMoodRepository(db)
	communityRepo := repositories.NewGORMCommunityRepository(db)
	convRepo := repositories.NewGORMConversationRepository(db)
	bookRepo := repositories.NewGORMBookRepository(db)

	classifier = &stubClassifier{mood: models.MoodHappy}

	authService := services.NewAuthService(userRepo, nil, "test_jwt_secret")
	journalService := services.NewJournalService(journalRepo, moodRepo, classifier, nil)
	moodService := services.NewMoodService(moodRepo, nil)
	communityService := services.NewCommunityService(communityRepo, nil)
	convService := services.NewConversationService(convRepo, &stubCompanion{})
	bookService := services.NewBookService(bookRepo)
	mediaService := services.NewMediaService(services.MediaConfig{})

	authHandler := handlers.NewAuthHandler(authService)
	journalHandler := handlers.NewJournalHandler(journalService)
	moodHandler := handlers.NewMoodHandler(moodService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	genieHandler := handlers.NewGenieHandler(convService)
	bookHandler := handlers.NewBookHandler(bookService)
	mediaHandler := handlers.NewMediaHandler(mediaService, &stubQuoter{})

	a := fiber.New()
	apiV1 := a.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)

	publicReads := apiV1.Group("", middleware.OptionalAuth(authService))
	communityHandler.RegisterPublicRoutes(publicReads)
	mediaHandler.RegisterRoutes(publicReads)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	journalHandler.RegisterRoutes(protected)
	moodHandler.RegisterRoutes(protected)
	communityHandler.RegisterProtectedRoutes(protected)
	genieHandler.RegisterRoutes(protected)
	bookHandler.RegisterRoutes(protected)

	return a, nil
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	var err error
	app, err = setupApp()
	if err != nil {
		fmt.Printf("Failed to set up test app: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// doRequest performs a request against the app and decodes the JSON response
// into out (when out is non-nil).
func doRequest(t *testing.T, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reqBody)
	assert.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, out))
	}
	return resp
}

// registerUser creates an account and returns its token and id.
func registerUser(t *testing.T, email string) (token, userID string) {
	t.Helper()
	var result struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	resp := doRequest(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	}, &result)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, result.Token)
	return result.Token, result.User.ID
}

func TestRegisterAndLogin(t *testing.T) {
	token, _ := registerUser(t, "register@example.com")
	assert.NotEmpty(t, token)

	// Duplicate email is rejected with a conflict.
	resp := doRequest(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    "register@example.com",
		"password": "different456",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login with the right password succeeds.
	var result struct {
		Token string `json:"token"`
	}
	resp = doRequest(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "register@example.com",
		"password": "secret123",
	}, &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result.Token)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	registerUser(t, "generic@example.com")

	var wrongPassword map[string]interface{}
	resp := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "generic@example.com",
		"password": "wrong-password",
	}, &wrongPassword)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var unknownEmail map[string]interface{}
	resp = doRequest(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	}, &unknownEmail)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Same body for both failure modes, no account-existence oracle.
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, "Invalid credentials", wrongPassword["message"])
}

func TestCurrentUserNeverExposesPasswordHash(t *testing.T) {
	token, userID := registerUser(t, "profile@example.com")

	var user map[string]interface{}
	resp := doRequest(t, http.MethodGet, "/api/v1/auth/user", token, nil, &user)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "profile@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")
}

func TestAuthHeaderForms(t *testing.T) {
	token, _ := registerUser(t, "header@example.com")

	// Raw token.
	resp := doRequest(t, http.MethodGet, "/api/v1/auth/user", token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Bearer-prefixed token.
	resp = doRequest(t, http.MethodGet, "/api/v1/auth/user", "Bearer "+token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvalidTokensAreRejectedUniformly(t *testing.T) {
	token, _ := registerUser(t, "tamper@example.com")

	var missing map[string]interface{}
	resp := doRequest(t, http.MethodGet, "/api/v1/journal/", "", nil, &missing)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var tampered map[string]interface{}
	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", token+"x", nil, &tampered)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var garbage map[string]interface{}
	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", "Bearer not.a.token", nil, &garbage)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Malformed and tampered tokens get the same response.
	assert.Equal(t, tampered, garbage)
}

func TestUpdateProfile(t *testing.T) {
	token, _ := registerUser(t, "theme@example.com")

	var user map[string]interface{}
	resp := doRequest(t, http.MethodPatch, "/api/v1/user/profile", token, fiber.Map{
		"name":  "Renamed",
		"theme": "light",
	}, &user)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", user["name"])
	assert.Equal(t, "light", user["theme"])

	// Unlisted theme values are rejected.
	resp = doRequest(t, http.MethodPatch, "/api/v1/user/profile", token, fiber.Map{
		"theme": "solarized",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJournalLifecycle(t *testing.T) {
	token, userID := registerUser(t, "journal@example.com")
	classifier.mood = models.MoodSad

	var entry models.JournalEntry
	resp := doRequest(t, http.MethodPost, "/api/v1/journal/", token, fiber.Map{
		"title":   "Hard day",
		"content": "Everything felt heavy today.",
	}, &entry)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, userID, entry.UserID)
	// The mood comes from the classifier, not the client.
	assert.Equal(t, models.MoodSad, entry.Mood)

	var entries []models.JournalEntry
	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", token, nil, &entries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, entries, 1)

	// Saving a journal entry also records a derived mood point.
	var moods []models.MoodEntry
	resp = doRequest(t, http.MethodGet, "/api/v1/mood/", token, nil, &moods)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, moods, 1)
	assert.Equal(t, models.MoodSad, moods[0].Mood)
	assert.Equal(t, "From journal: Hard day", moods[0].Notes)

	// Changed content is re-classified.
	classifier.mood = models.MoodHappy
	var updated models.JournalEntry
	resp = doRequest(t, http.MethodPatch, "/api/v1/journal/"+entry.ID, token, fiber.Map{
		"content": "Actually things turned around.",
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.MoodHappy, updated.Mood)

	resp = doRequest(t, http.MethodDelete, "/api/v1/journal/"+entry.ID, token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", token, nil, &entries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, entries, 0)
}

func TestJournalOwnershipIsEnforced(t *testing.T) {
	aliceToken, _ := registerUser(t, "alice-owner@example.com")
	bobToken, _ := registerUser(t, "bob-intruder@example.com")

	var entry models.JournalEntry
	resp := doRequest(t, http.MethodPost, "/api/v1/journal/", aliceToken, fiber.Map{
		"title":   "Private",
		"content": "Alice's thoughts.",
	}, &entry)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob cannot update or delete Alice's entry; the id behaves as missing.
	resp = doRequest(t, http.MethodPatch, "/api/v1/journal/"+entry.ID, bobToken, fiber.Map{
		"title": "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, "/api/v1/journal/"+entry.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The entry is intact and invisible to Bob's listing.
	var aliceEntries []models.JournalEntry
	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", aliceToken, nil, &aliceEntries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, aliceEntries, 1)
	assert.Equal(t, "Private", aliceEntries[0].Title)

	var bobEntries []models.JournalEntry
	resp = doRequest(t, http.MethodGet, "/api/v1/journal/", bobToken, nil, &bobEntries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, bobEntries, 0)
}

func TestMoodTracking(t *testing.T) {
	token, _ := registerUser(t, "mood@example.com")

	var entry models.MoodEntry
	resp := doRequest(t, http.MethodPost, "/api/v1/mood/", token, fiber.Map{
		"mood":  "very_happy",
		"notes": "Great morning run",
	}, &entry)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.MoodVeryHappy, entry.Mood)

	// Values outside the scale are rejected.
	resp = doRequest(t, http.MethodPost, "/api/v1/mood/", token, fiber.Map{
		"mood": "euphoric",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var entries []models.MoodEntry
	resp = doRequest(t, http.MethodGet, "/api/v1/mood/?days=30", token, nil, &entries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, entries, 1)
}

func TestCommunityFeedAggregates(t *testing.T) {
	aliceToken, aliceID := registerUser(t, "alice-feed@example.com")
	bobToken, _ := registerUser(t, "bob-feed@example.com")

	var post models.CommunityPost
	resp := doRequest(t, http.MethodPost, "/api/v1/community/posts", aliceToken, fiber.Map{
		"content": "Hello community",
	}, &post)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob likes and comments.
	resp = doRequest(t, http.MethodPost, "/api/v1/community/posts/"+post.ID+"/like", bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, http.MethodPost, "/api/v1/community/posts/"+post.ID+"/comments", bobToken, fiber.Map{
		"content": "Welcome!",
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Liking twice does not double-count.
	resp = doRequest(t, http.MethodPost, "/api/v1/community/posts/"+post.ID+"/like", bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	findPost := func(feed []models.FeedPost) *models.FeedPost {
		for i := range feed {
			if feed[i].ID == post.ID {
				return &feed[i]
			}
		}
		return nil
	}

	// Bob sees his own like.
	var bobFeed []models.FeedPost
	resp = doRequest(t, http.MethodGet, "/api/v1/community/posts", bobToken, nil, &bobFeed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fromBob := findPost(bobFeed)
	assert.NotNil(t, fromBob)
	assert.Equal(t, int64(1), fromBob.LikesCount)
	assert.Equal(t, int64(1), fromBob.CommentsCount)
	assert.True(t, fromBob.UserLiked)
	assert.Equal(t, aliceID, fromBob.Author.ID)

	// Alice sees the same counts but not Bob's like as her own.
	var aliceFeed []models.FeedPost
	resp = doRequest(t, http.MethodGet, "/api/v1/community/posts", aliceToken, nil, &aliceFeed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fromAlice := findPost(aliceFeed)
	assert.NotNil(t, fromAlice)
	assert.Equal(t, int64(1), fromAlice.LikesCount)
	assert.False(t, fromAlice.UserLiked)

	// Anonymous callers can read the feed; userLiked is always false.
	var anonFeed []models.FeedPost
	resp = doRequest(t, http.MethodGet, "/api/v1/community/posts", "", nil, &anonFeed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fromAnon := findPost(anonFeed)
	assert.NotNil(t, fromAnon)
	assert.False(t, fromAnon.UserLiked)

	// Unlike drops the count; unliking again stays OK.
	resp = doRequest(t, http.MethodDelete, "/api/v1/community/posts/"+post.ID+"/like", bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, http.MethodDelete, "/api/v1/community/posts/"+post.ID+"/like", bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, "/api/v1/community/posts", bobToken, nil, &bobFeed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fromBob = findPost(bobFeed)
	assert.Equal(t, int64(0), fromBob.LikesCount)
	assert.False(t, fromBob.UserLiked)
}

func TestCommunityPostOwnership(t *testing.T) {
	aliceToken, _ := registerUser(t, "alice-posts@example.com")
	bobToken, _ := registerUser(t, "bob-posts@example.com")

	var post models.CommunityPost
	resp := doRequest(t, http.MethodPost, "/api/v1/community/posts", aliceToken, fiber.Map{
		"content": "Mine to delete",
	}, &post)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, "/api/v1/community/posts/"+post.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, "/api/v1/community/posts/"+post.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLikeMissingPost(t *testing.T) {
	token, _ := registerUser(t, "likes@example.com")

	resp := doRequest(t, http.MethodPost, "/api/v1/community/posts/no-such-post/like", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAIChatStoresHistory(t *testing.T) {
	token, _ := registerUser(t, "chat@example.com")

	var reply genai.GenieResponse
	resp := doRequest(t, http.MethodPost, "/api/v1/ai/chat", token, fiber.Map{
		"message": "I feel stuck.",
	}, &reply)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "You are doing great.", reply.Message)

	var history []models.AIConversation
	resp = doRequest(t, http.MethodGet, "/api/v1/ai/conversations", token, nil, &history)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, history, 1)
	assert.Equal(t, "I feel stuck.", history[0].Message)
	assert.Equal(t, "You are doing great.", history[0].Response)
}

func TestBookReadingState(t *testing.T) {
	token, _ := registerUser(t, "reader@example.com")

	// Never-opened book reads as null.
	req, err := http.NewRequest(http.MethodGet, "/api/v1/books/book-1/reading", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	var reading models.BookReading
	resp2 := doRequest(t, http.MethodPost, "/api/v1/books/book-1/reading", token, fiber.Map{
		"currentPage": 12,
		"totalPages":  300,
	}, &reading)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, 12, reading.CurrentPage)

	resp2 = doRequest(t, http.MethodPatch, "/api/v1/books/book-1/reading", token, fiber.Map{
		"currentPage": 48,
	}, &reading)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, 48, reading.CurrentPage)
	assert.Equal(t, 300, reading.TotalPages)
}

func TestBookmarksAreOwnerScoped(t *testing.T) {
	aliceToken, _ := registerUser(t, "alice-books@example.com")
	bobToken, _ := registerUser(t, "bob-books@example.com")

	var bookmark models.BookBookmark
	resp := doRequest(t, http.MethodPost, "/api/v1/books/book-2/bookmarks", aliceToken, fiber.Map{
		"pageNumber": 42,
		"title":      "Key passage",
	}, &bookmark)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, "/api/v1/books/book-2/bookmarks/"+bookmark.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, "/api/v1/books/book-2/bookmarks/"+bookmark.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicMediaRoutes(t *testing.T) {
	var movies []services.Movie
	resp := doRequest(t, http.MethodGet, "/api/v1/media/movies", "", nil, &movies)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, movies)

	var quote genai.Quote
	resp = doRequest(t, http.MethodGet, "/api/v1/content/quote", "", nil, &quote)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Keep going.", quote.Quote)

	// The YouTube proxy fails cleanly when no key is configured.
	resp = doRequest(t, http.MethodGet, "/api/v1/media/shorts", "", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
