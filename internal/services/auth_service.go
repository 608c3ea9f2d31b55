package services

import (
	"crypto/rand"
	"encoding/hex"

	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// IssueToken validates credentials and returns the user's bearer token,
	// creating one on first request and reusing it afterwards.
	IssueToken(req *dto.TokenRequest) (*dto.TokenResponse, error)

	// Authenticate resolves a presented token key to its user.
	Authenticate(key string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.AuthTokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.AuthTokenRepository) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *AuthServiceImpl) IssueToken(req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenRepo.FindByUserID(user.ID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.InternalError(err)
		}

		token = &models.AuthToken{
			Key:    generateTokenKey(),
			UserID: user.ID,
		}
		if err := s.tokenRepo.Create(token); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return &dto.TokenResponse{Token: token.Key}, nil
}

func (s *AuthServiceImpl) Authenticate(key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid token")
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid token")
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("User inactive or deleted")
	}

	return user, nil
}

// generateTokenKey returns a 40-char hex key from a CSPRNG.
func generateTokenKey() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the host is broken
		panic(err)
	}
	return hex.EncodeToString(b)
}
