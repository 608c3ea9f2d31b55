package repositories

import (
	"errors"

	"recipebook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("auth token not found")

type AuthTokenRepository interface {
	FindByKey(key string) (*models.AuthToken, error)
	FindByUserID(userID string) (*models.AuthToken, error)
	Create(token *models.AuthToken) error
}

type AuthTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &AuthTokenRepositoryImpl{db: db}
}

func (r *AuthTokenRepositoryImpl) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.First(&token, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *AuthTokenRepositoryImpl) FindByUserID(userID string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.First(&token, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *AuthTokenRepositoryImpl) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}
