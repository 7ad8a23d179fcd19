package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/pkg/googleauth"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// GoogleVerifier verifies a Google-issued ID token and returns its identity
// claims. Implemented by googleauth.Verifier.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*googleauth.Claims, error)
}

// AuthService handles registration, login, federated sign-in, token
// issuance/verification, and profile updates.
type AuthService struct {
	userRepo  repositories.UserRepository
	google    GoogleVerifier
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for 7 days;
// there is no server-side revocation, logout is client-side discard.
func NewAuthService(userRepo repositories.UserRepository, google GoogleVerifier, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		google:    google,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  7 * 24 * time.Hour,
	}
}

// AuthResult is a minted token plus the authenticated user.
type AuthResult struct {
	Token string
	User  *models.User
}

// Register creates a new account with a bcrypt-hashed password and returns a
// session token. Duplicate emails (case-insensitive) fail with ErrEmailExists.
func (s *AuthService) Register(email, password, name string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueFor(user)
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same ErrInvalidCredentials so callers cannot tell which failed.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	// Google-only accounts have no password hash and cannot log in locally.
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueFor(user)
}

// GoogleLogin verifies a provider assertion, finds or creates the local user
// by email, backfills a missing profile picture, and issues a session token.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(claims.Email)
	if errors.Is(err, ErrNotFound) {
		user = &models.User{
			Email:           claims.Email,
			Name:            claims.Name,
			ProfileImageURL: claims.Picture,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user from google sign-in: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	} else if user.ProfileImageURL == "" && claims.Picture != "" {
		user.ProfileImageURL = claims.Picture
		if err := s.userRepo.Update(user); err != nil {
			// Backfill only; sign-in still succeeds.
			log.Printf("failed to backfill profile image for user %s: %v", user.ID, err)
		}
	}

	return s.issueFor(user)
}

// GetUser returns the user for a resolved id.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ProfileUpdate carries the mutable profile fields; nil means leave as is.
type ProfileUpdate struct {
	Name            *string
	ProfileImageURL *string
	Theme           *string
	Language        *string
}

// UpdateProfile applies a partial profile update for the caller.
func (s *AuthService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.ProfileImageURL != nil {
		user.ProfileImageURL = *update.ProfileImageURL
	}
	if update.Theme != nil {
		user.Theme = *update.Theme
	}
	if update.Language != nil {
		user.Language = *update.Language
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and validates a session token and returns the user id
// it asserts. It performs no database access.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token: missing user_id claim")
	}
	return userID, nil
}

// issueFor mints a signed token embedding the user id and expiry.
func (s *AuthService) issueFor(user *models.User) (*AuthResult, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: tokenString, User: user}, nil
}
