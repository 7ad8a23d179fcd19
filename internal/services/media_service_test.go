package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mindbloom/internal/services"

	"github.com/stretchr/testify/assert"
)

func youtubeServer(t *testing.T, capture *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			params := map[string]string{}
			for k := range r.URL.Query() {
				params[k] = r.URL.Query().Get(k)
			}
			*capture = params
		}
		resp := map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id": map[string]string{"videoId": "vid-1"},
					"snippet": map[string]interface{}{
						"title":        "Calm ocean scenes",
						"description":  "An hour of waves.",
						"channelTitle": "Nature Channel",
						"thumbnails": map[string]interface{}{
							"high": map[string]string{"url": "https://img.example.com/high.jpg"},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestMediaService_SearchMovies(t *testing.T) {
	var params map[string]string
	server := youtubeServer(t, &params)
	defer server.Close()

	service := services.NewMediaService(services.MediaConfig{
		YouTubeAPIKey:  "yt-key",
		YouTubeBaseURL: server.URL,
	})

	movies, err := service.SearchMovies(context.Background(), "uplifting films")

	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, "vid-1", movies[0].VideoID)
	assert.Equal(t, "Calm ocean scenes", movies[0].Title)
	assert.Equal(t, "https://img.example.com/high.jpg", movies[0].Thumbnail)

	// Only embeddable videos under moderate safe search are requested.
	assert.Equal(t, "uplifting films", params["q"])
	assert.Equal(t, "true", params["videoEmbeddable"])
	assert.Equal(t, "moderate", params["safeSearch"])
}

func TestMediaService_SearchMovies_EmptyQuery(t *testing.T) {
	service := services.NewMediaService(services.MediaConfig{YouTubeAPIKey: "yt-key"})

	// An empty query short-circuits without calling YouTube.
	movies, err := service.SearchMovies(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, movies)
}

func TestMediaService_Shorts_RequestsShortDuration(t *testing.T) {
	var params map[string]string
	server := youtubeServer(t, &params)
	defer server.Close()

	service := services.NewMediaService(services.MediaConfig{
		YouTubeAPIKey:  "yt-key",
		YouTubeBaseURL: server.URL,
	})

	shorts, err := service.Shorts(context.Background(), "")

	assert.NoError(t, err)
	assert.Len(t, shorts, 1)
	// Default query and short-form filter apply when none is given.
	assert.Equal(t, "funny shorts", params["q"])
	assert.Equal(t, "short", params["videoDuration"])
}

func TestMediaService_YouTubeNotConfigured(t *testing.T) {
	service := services.NewMediaService(services.MediaConfig{})

	_, err := service.SearchMovies(context.Background(), "anything")
	assert.ErrorIs(t, err, services.ErrYouTubeNotConfigured)

	_, err = service.Shorts(context.Background(), "anything")
	assert.ErrorIs(t, err, services.ErrYouTubeNotConfigured)
}

func TestMediaService_Books(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"the-power-of-now-tolle.pdf", "atomic-habits-clear.pdf", "notes.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("pdf"), 0o644))
	}
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))

	service := services.NewMediaService(services.MediaConfig{BooksDir: dir})

	books, err := service.Books()

	assert.NoError(t, err)
	// Only PDF files become catalog entries.
	assert.Len(t, books, 2)

	byTitle := map[string]services.Book{}
	for _, b := range books {
		byTitle[b.Title] = b
	}
	power := byTitle["The Power Of Now"]
	assert.Equal(t, "Tolle", power.Author)
	assert.Equal(t, "/books/the-power-of-now-tolle.pdf", power.PDFURL)
	habits := byTitle["Atomic Habits"]
	assert.Equal(t, "Clear", habits.Author)
}

func TestMediaService_Books_MissingDir(t *testing.T) {
	service := services.NewMediaService(services.MediaConfig{BooksDir: "does-not-exist"})

	_, err := service.Books()
	assert.Error(t, err)
}

func TestMediaService_CuratedCatalogs(t *testing.T) {
	service := services.NewMediaService(services.MediaConfig{})

	assert.NotEmpty(t, service.Movies())
	assert.NotEmpty(t, service.Music())
	assert.NotEmpty(t, service.TedTalks())
	assert.NotEmpty(t, service.Games())
}
