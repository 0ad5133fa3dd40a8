package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"log/slog"

	"useradmin/internal/database/models"
	"useradmin/internal/database/repository"
)

// TokenName is the label attached to tokens issued at registration and login
const TokenName = "auth_token"

// TokenIssuer mints, revokes, and resolves opaque bearer tokens. Tokens are
// random strings handed out once; only their SHA-256 digest is stored.
type TokenIssuer interface {
	Issue(userID uint, name string) (string, error)
	Revoke(tokenID uint) error
	RevokeAll(userID uint) error
	Resolve(plaintext string) (*models.AccessToken, error)
}

type tokenIssuer struct {
	tokenRepo repository.AccessTokenRepository
	logger    *slog.Logger
}

// NewTokenIssuer creates a new token issuer instance
func NewTokenIssuer(tokenRepo repository.AccessTokenRepository, logger *slog.Logger) TokenIssuer {
	return &tokenIssuer{
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

func (s *tokenIssuer) Issue(userID uint, name string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	plaintext := base64.URLEncoding.EncodeToString(tokenBytes)

	token := &models.AccessToken{
		UserID:    userID,
		Name:      name,
		TokenHash: hashToken(plaintext),
	}

	if err := s.tokenRepo.Create(token); err != nil {
		s.logger.Error("❌ [TokenIssuer] Failed to store token", "user_id", userID, "error", err)
		return "", err
	}

	s.logger.Info("🔑 [TokenIssuer] Token issued", "user_id", userID, "token_id", token.ID)
	return plaintext, nil
}

func (s *tokenIssuer) Revoke(tokenID uint) error {
	if err := s.tokenRepo.Delete(tokenID); err != nil {
		s.logger.Warn("⚠️ [TokenIssuer] Failed to revoke token", "token_id", tokenID, "error", err)
		return err
	}

	s.logger.Info("🗑️ [TokenIssuer] Token revoked", "token_id", tokenID)
	return nil
}

// RevokeAll deletes every token belonging to the user. Called at login to
// rotate out stale sessions.
func (s *tokenIssuer) RevokeAll(userID uint) error {
	if err := s.tokenRepo.DeleteAllUserTokens(userID); err != nil {
		s.logger.Error("❌ [TokenIssuer] Failed to revoke user tokens", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("🧹 [TokenIssuer] All user tokens revoked", "user_id", userID)
	return nil
}

func (s *tokenIssuer) Resolve(plaintext string) (*models.AccessToken, error) {
	token, err := s.tokenRepo.FindByTokenHash(hashToken(plaintext))
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error("❌ [TokenIssuer] Database error", "error", err)
		return nil, err
	}
	return token, nil
}

func hashToken(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}

// Service errors
var (
	ErrInvalidToken = errors.New("invalid or revoked token")
)
