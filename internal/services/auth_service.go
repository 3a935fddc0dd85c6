package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeremyakd/todo-challenge/internal/models"
	"github.com/jeremyakd/todo-challenge/internal/storage"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStorage
	tokens storage.TokenStorage
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStorage,
	tokens storage.TokenStorage,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if params.Username == "" || params.Password == "" {
		return nil, ErrMissingCredentials
	}

	now := time.Now()
	user := models.User{
		Username:  params.Username,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	key, err := generateTokenKey()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return nil, err
	}
	token := models.Token{
		Key:       key,
		UserID:    user.ID,
		CreatedAt: now,
	}

	err = s.users.CreateUserWithToken(ctx, &user, &token)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Warn().
				Str("username", user.Username).
				Msg("user with this username already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return &AuthResult{
		UserID: user.ID,
		Token:  token.Key,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if params.Username == "" || params.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same error as a password mismatch so the response does
			// not reveal whether the username exists.
			s.logger.Warn().
				Str("username", params.Username).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	}
	if !match {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	// Idempotent token retrieval: logging in again
	// returns the existing token, it does not rotate.
	token, err := s.tokens.GetTokenByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Err(err).
				Msg("failed to select token by user id")
			return nil, err
		}

		key, keyErr := generateTokenKey()
		if keyErr != nil {
			s.logger.Error().
				Err(keyErr).
				Msg("failed to generate token")
			return nil, keyErr
		}
		token = &models.Token{
			Key:       key,
			UserID:    user.ID,
			CreatedAt: time.Now(),
		}
		err = s.tokens.SaveToken(ctx, token)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to save token")
			return nil, err
		}
		s.logger.Debug().
			Str("user_id", user.ID).
			Msg("issued token")
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &AuthResult{
		UserID: user.ID,
		Token:  token.Key,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, userID string) error {
	deleted, err := s.tokens.DeleteTokensByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to delete tokens by user id")
		return err
	}
	s.logger.Debug().
		Str("user_id", userID).
		Int64("affected", deleted).
		Msg("deleted tokens by user id")

	s.logger.Info().
		Str("user_id", userID).
		Msg("logged out")
	return nil
}

func (s *authServiceImpl) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	user, err := s.tokens.GetUserByTokenKey(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Msg("token not found")
			return nil, ErrInvalidToken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by token")
		return nil, err
	}
	return user, nil
}

func generateTokenKey() (string, error) {
	const length = 32
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
