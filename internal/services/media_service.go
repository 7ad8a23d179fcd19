package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrYouTubeNotConfigured is returned when search is requested without an API
// key configured.
var ErrYouTubeNotConfigured = errors.New("youtube api key not configured")

// Movie is a curated or searched movie recommendation.
type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Thumbnail   string `json:"thumbnail"`
	VideoID     string `json:"videoId"`
	Description string `json:"description"`
}

// Track is a curated music recommendation.
type Track struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Mood     string `json:"mood"`
	TrackID  string `json:"trackId"`
	AlbumArt string `json:"albumArt"`
}

// TedTalk is a curated talk recommendation.
type TedTalk struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Speaker     string `json:"speaker"`
	Duration    string `json:"duration"`
	TalkID      string `json:"talkId"`
	Thumbnail   string `json:"thumbnail"`
	EmbedURL    string `json:"embedUrl"`
	Description string `json:"description"`
}

// Game is a curated calming-game link.
type Game struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	URL         string `json:"url"`
}

// Short is a short-form video result.
type Short struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
	VideoID   string `json:"videoId"`
}

// Book is a catalog entry derived from the PDF library directory.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	PDFURL      string `json:"pdfUrl"`
	Thumbnail   string `json:"thumbnail"`
}

// MediaConfig holds the media service settings. YouTubeBaseURL is overridable
// for tests.
type MediaConfig struct {
	YouTubeAPIKey  string
	YouTubeBaseURL string
	BooksDir       string
}

// MediaService serves the curated catalogs, the YouTube search proxy, and the
// PDF book catalog.
type MediaService struct {
	config     MediaConfig
	httpClient *http.Client
}

// NewMediaService creates a new MediaService.
func NewMediaService(config MediaConfig) *MediaService {
	if config.YouTubeBaseURL == "" {
		config.YouTubeBaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if config.BooksDir == "" {
		config.BooksDir = "books"
	}
	return &MediaService{
		config:     config,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Movies returns the curated movie list.
func (s *MediaService) Movies() []Movie {
	return []Movie{
		{ID: "1", Title: "The Pursuit of Happyness", Genre: "Drama • Inspiration", Thumbnail: "https://images.unsplash.com/photo-1440404653325-ab127d49abc1", VideoID: "dKi5XoeTN0k", Description: "A struggling salesman takes custody of his son as he's poised to begin a life-changing professional career."},
		{ID: "2", Title: "Soul", Genre: "Animation • Philosophy", Thumbnail: "https://images.unsplash.com/photo-1518676590629-3dcbd9c5a5c9", VideoID: "xOsLiwp0A-M", Description: "A musician who has lost his passion for music is transported out of his body and must find his way back."},
		{ID: "3", Title: "Inside Out", Genre: "Animation • Emotional", Thumbnail: "https://images.unsplash.com/photo-1489599613-e715e6ebe90d", VideoID: "yRUAzGQ3nSY", Description: "After young Riley is uprooted from her Midwest life, her emotions conflict on how best to navigate a new city."},
		{ID: "4", Title: "The Secret Life of Walter Mitty", Genre: "Adventure • Inspiration", Thumbnail: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4", VideoID: "QD6cy4PBQPI", Description: "When his job is threatened, Walter takes action in the real world embarking on a global journey."},
		{ID: "5", Title: "Good Will Hunting", Genre: "Drama • Growth", Thumbnail: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d", VideoID: "QSMvyuEeIyw", Description: "A janitor at M.I.T. with a gift for mathematics needs help from a psychologist to find direction in his life."},
	}
}

// Music returns the curated uplifting-track list.
func (s *MediaService) Music() []Track {
	return []Track{
		{ID: 1, Title: "Three Little Birds", Artist: "Bob Marley", Mood: "Uplifting", TrackID: "0JG5IlmQdM6BKlqpxkDW", AlbumArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f"},
		{ID: 2, Title: "Happy", Artist: "Pharrell Williams", Mood: "Joyful", TrackID: "60nZcImufyMA1MKQY3dcC", AlbumArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f"},
		{ID: 3, Title: "Here Comes the Sun", Artist: "The Beatles", Mood: "Hopeful", TrackID: "6dGnYIeXmHdcikdzNNDMm2", AlbumArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f"},
		{ID: 4, Title: "Good Vibrations", Artist: "The Beach Boys", Mood: "Positive", TrackID: "2hZI2AO4gOBlBf4J7kqDkT", AlbumArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f"},
		{ID: 5, Title: "I Can See Clearly Now", Artist: "Johnny Nash", Mood: "Optimistic", TrackID: "0oRL9MD8wWfkdUFdtK6kc", AlbumArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f"},
	}
}

// TedTalks returns the curated talk list.
func (s *MediaService) TedTalks() []TedTalk {
	return []TedTalk{
		{ID: 1, Title: "The Power of Vulnerability", Speaker: "Brené Brown", Duration: "20:50", TalkID: "iCvmsMzlF7o", Thumbnail: "/ted-thumbnails/iCvmsMzlF7o.jpg", EmbedURL: "https://embed.ted.com/talks/lang/en/brene_brown_the_power_of_vulnerability", Description: "Brené Brown studies human connection — our ability to empathize, belong, love."},
		{ID: 2, Title: "How to Make Stress Your Friend", Speaker: "Kelly McGonigal", Duration: "14:28", TalkID: "RcGyVTAoXEU", Thumbnail: "/ted-thumbnails/RcGyVTAoXEU.jpg", EmbedURL: "https://embed.ted.com/talks/lang/en/kelly_mcgonigal_how_to_make_stress_your_friend", Description: "Psychologist Kelly McGonigal urges us to see stress as a positive."},
		{ID: 3, Title: "The Happy Secret to Better Work", Speaker: "Shawn Achor", Duration: "12:20", TalkID: "GXy__kBVq1M", Thumbnail: "/ted-thumbnails/GXy__kBVq1M.jpg", EmbedURL: "https://embed.ted.com/talks/lang/en/shawn_achor_the_happy_secret_to_better_work", Description: "We believe we should work hard in order to be happy, but could we be thinking about things backwards?"},
		{ID: 4, Title: "Your Body Language May Shape Who You Are", Speaker: "Amy Cuddy", Duration: "21:02", TalkID: "Ks-_Mh1QhMc", Thumbnail: "/ted-thumbnails/Ks-_Mh1QhMc.jpg", EmbedURL: "https://embed.ted.com/talks/lang/en/amy_cuddy_your_body_language_may_shape_who_you_are", Description: "Body language affects how others see us, but it may also change how we see ourselves."},
		{ID: 5, Title: "The Puzzle of Motivation", Speaker: "Dan Pink", Duration: "18:36", TalkID: "rrkrvAUbU9Y", Thumbnail: "/ted-thumbnails/rrkrvAUbU9Y.jpg", EmbedURL: "https://embed.ted.com/talks/lang/en/dan_pink_the_puzzle_of_motivation", Description: "Career analyst Dan Pink examines the puzzle of motivation."},
	}
}

// Games returns the curated calming-games list.
func (s *MediaService) Games() []Game {
	return []Game{
		{ID: 1, Title: "Peaceful Puzzles", Description: "Relaxing jigsaw puzzles", Icon: "puzzle-piece", URL: "https://www.jigsawplanet.com"},
		{ID: 2, Title: "Garden Zen", Description: "Virtual gardening", Icon: "seedling", URL: "https://www.gardenscapes.com"},
		{ID: 3, Title: "Meditation Quest", Description: "Mindful adventure", Icon: "leaf", URL: "https://example.com/meditation-quest"},
		{ID: 4, Title: "Color Therapy", Description: "Relaxing coloring", Icon: "palette", URL: "https://www.colorfy.net"},
		{ID: 5, Title: "Breathing Bubbles", Description: "Breath-guided game", Icon: "circle", URL: "https://example.com/breathing-bubbles"},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchMovies proxies a movie search to the YouTube Data API.
func (s *MediaService) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	if query == "" {
		return []Movie{}, nil
	}
	resp, err := s.youtubeSearch(ctx, query, false)
	if err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(resp.Items))
	for _, it := range resp.Items {
		movies = append(movies, Movie{
			ID:          it.ID.VideoID,
			Title:       it.Snippet.Title,
			Genre:       it.Snippet.ChannelTitle,
			Thumbnail:   bestThumbnail(it.Snippet.Thumbnails.High.URL, it.Snippet.Thumbnails.Medium.URL, it.Snippet.Thumbnails.Default.URL),
			VideoID:     it.ID.VideoID,
			Description: it.Snippet.Description,
		})
	}
	return movies, nil
}

// Shorts proxies a short-form video search to the YouTube Data API.
func (s *MediaService) Shorts(ctx context.Context, query string) ([]Short, error) {
	if query == "" {
		query = "funny shorts"
	}
	resp, err := s.youtubeSearch(ctx, query, true)
	if err != nil {
		return nil, err
	}

	shorts := make([]Short, 0, len(resp.Items))
	for _, it := range resp.Items {
		shorts = append(shorts, Short{
			ID:        it.ID.VideoID,
			Title:     it.Snippet.Title,
			Channel:   it.Snippet.ChannelTitle,
			Thumbnail: bestThumbnail(it.Snippet.Thumbnails.High.URL, it.Snippet.Thumbnails.Medium.URL, it.Snippet.Thumbnails.Default.URL),
			VideoID:   it.ID.VideoID,
		})
	}
	return shorts, nil
}

func (s *MediaService) youtubeSearch(ctx context.Context, query string, shortsOnly bool) (*youtubeSearchResponse, error) {
	if s.config.YouTubeAPIKey == "" {
		return nil, ErrYouTubeNotConfigured
	}

	params := url.Values{
		"key":             {s.config.YouTubeAPIKey},
		"part":            {"snippet"},
		"q":               {query},
		"maxResults":      {"24"},
		"type":            {"video"},
		"videoEmbeddable": {"true"},
		"safeSearch":      {"moderate"},
	}
	if shortsOnly {
		params.Set("maxResults", "20")
		params.Set("videoDuration", "short")
	}

	endpoint := s.config.YouTubeBaseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search returned status %d", resp.StatusCode)
	}
	var out youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse youtube response: %w", err)
	}
	return &out, nil
}

func bestThumbnail(urls ...string) string {
	for _, u := range urls {
		if u != "" {
			return u
		}
	}
	return ""
}

// Books scans the PDF library directory and derives a catalog from the
// filenames ("title-author.pdf" when the author can be split out).
func (s *MediaService) Books() ([]Book, error) {
	entries, err := os.ReadDir(s.config.BooksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read books directory: %w", err)
	}

	books := []Book{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}

		base := strings.TrimSuffix(name, ".pdf")
		base = strings.TrimSuffix(base, ".PDF")
		parts := strings.Split(base, "-")
		author := "Unknown"
		titleParts := parts
		if len(parts) > 1 {
			author = titleCase(parts[len(parts)-1])
			titleParts = parts[:len(parts)-1]
		}
		title := titleCase(strings.Join(titleParts, " "))

		books = append(books, Book{
			ID:          len(books) + 1,
			Title:       title,
			Author:      author,
			Description: fmt.Sprintf("A transformative book about %s.", strings.ToLower(title)),
			PDFURL:      "/books/" + name,
			Thumbnail:   "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=200&h=300&fit=crop&crop=center",
		})
	}
	return books, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
