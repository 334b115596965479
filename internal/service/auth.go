package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ndmitriev/online-store/internal/events"
	"github.com/ndmitriev/online-store/internal/hash"
	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/store"
	"github.com/ndmitriev/online-store/pkg/tokens"
)

const minPasswordLen = 8

type AuthService struct {
	Users         *store.UserStore
	Publisher     events.Publisher
	AccessSecret  []byte
	RefreshSecret []byte
}

type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain a letter and a digit: %w", ErrValidation)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email required: %w", ErrValidation)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %q: %w", email, ErrAlreadyExists)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role, err := s.Users.EnsureRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       role.RoleID,
		CreatedAt:    time.Now().UTC(),
	}
	customer := &models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	created, err := s.Users.CreateUser(ctx, user, customer)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.UserID.String(), map[string]any{
		"type":    "user_registered",
		"user_id": created.UserID,
		"email":   created.Email,
	})
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	role, err := s.Users.GetRole(ctx, user.RoleID)
	if err != nil {
		return nil, nil, err
	}
	roleName := models.RoleCustomer
	if role != nil {
		roleName = role.RoleName
	}

	access, err := tokens.SignAccessToken(user.UserID, roleName, s.AccessSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := tokens.SignRefreshToken(user.UserID, roleName, s.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}

	s.publish(ctx, user.UserID.String(), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.UserID,
	})
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh trades a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	access, err := tokens.SignAccessToken(claims.UserID, claims.Role, s.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := tokens.SignRefreshToken(claims.UserID, claims.Role, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("publish user event", "error", err)
	}
}
