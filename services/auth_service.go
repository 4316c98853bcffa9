package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

const (
	jwtClaimUserID  = "user_id"
	jwtClaimIsStaff = "is_staff"
)

type AuthService interface {
	// Login проверяет пароль и возвращает подписанный JWT.
	Login(ctx context.Context, input models.Credentials) (string, error)
	// ParseToken проверяет подпись и срок действия токена и возвращает user_id.
	ParseToken(tokenString string) (int, error)
	// ResolveActor загружает пользователя и его игрока (если есть).
	ResolveActor(ctx context.Context, userID int) (models.Actor, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	playerRepo repositories.PlayerRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare password hash: %w", err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		jwtClaimUserID:  user.ID,
		jwtClaimIsStaff: user.IsStaff,
		"iat":           now.Unix(),
		"exp":           now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *authService) ParseToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// JSON numbers decode as float64.
	raw, ok := claims[jwtClaimUserID].(float64)
	if !ok || raw != float64(int(raw)) || raw <= 0 {
		return 0, ErrInvalidToken
	}
	return int(raw), nil
}

func (s *authService) ResolveActor(ctx context.Context, userID int) (models.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return models.Actor{}, ErrInvalidToken
		}
		return models.Actor{}, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	actor := models.Actor{UserID: user.ID, IsStaff: user.IsStaff}

	player, err := s.playerRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		actor.PlayerID = &player.ID
	case !errors.Is(err, repositories.ErrPlayerNotFound):
		return models.Actor{}, fmt.Errorf("failed to get player of user %d: %w", userID, err)
	}
	return actor, nil
}
