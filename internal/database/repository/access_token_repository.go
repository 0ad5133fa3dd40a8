package repository

import (
	"errors"

	"gorm.io/gorm"

	"useradmin/internal/database/models"
)

// AccessTokenRepository defines the interface for access token operations.
// Tokens are created and deleted, never updated.
type AccessTokenRepository interface {
	Create(token *models.AccessToken) error
	FindByTokenHash(hash string) (*models.AccessToken, error)
	Delete(id uint) error
	DeleteAllUserTokens(userID uint) error
	CountUserTokens(userID uint) (int64, error)
}

type accessTokenRepository struct {
	db *gorm.DB
}

// NewAccessTokenRepository creates a new access token repository instance
func NewAccessTokenRepository(db *gorm.DB) AccessTokenRepository {
	return &accessTokenRepository{db: db}
}

func (r *accessTokenRepository) Create(token *models.AccessToken) error {
	return r.db.Create(token).Error
}

// FindByTokenHash loads the token and its owning user. The user is loaded
// unscoped: a soft-deleted user's token still resolves (tokens are not
// revoked on soft delete).
func (r *accessTokenRepository) FindByTokenHash(hash string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.Where("token_hash = ?", hash).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *accessTokenRepository) Delete(id uint) error {
	result := r.db.Delete(&models.AccessToken{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *accessTokenRepository) DeleteAllUserTokens(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error
}

func (r *accessTokenRepository) CountUserTokens(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AccessToken{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
)
