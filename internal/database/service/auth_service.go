package service

import (
	"log/slog"

	"useradmin/internal/database/models"
)

// Identity identifies the authenticated caller of a single request. It is
// passed explicitly through the call chain instead of being drawn from
// ambient request state.
type Identity struct {
	User    *models.User
	TokenID uint
}

// AuthService defines the interface for the authentication flows
type AuthService interface {
	Register(name, email, password, role string) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	Logout(ident Identity) error
	ResolveToken(plaintext string) (Identity, error)
}

type authService struct {
	users  UserService
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(users UserService, tokens TokenIssuer, logger *slog.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates (or resurrects) the user and issues its first token.
func (s *authService) Register(name, email, password, role string) (*models.User, string, error) {
	user, err := s.users.CreateOrResurrect(name, email, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, TokenName)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials, revokes every previously issued token, and
// issues a fresh one: after login exactly one valid token exists.
func (s *authService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.Authenticate(email, password)
	if err != nil {
		return nil, "", err
	}

	if err := s.tokens.RevokeAll(user.ID); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, TokenName)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout revokes exactly the token that authenticated the current request.
func (s *authService) Logout(ident Identity) error {
	if err := s.tokens.Revoke(ident.TokenID); err != nil {
		return err
	}

	s.logger.Info("👋 [AuthService] User logged out", "user_id", ident.User.ID)
	return nil
}

func (s *authService) ResolveToken(plaintext string) (Identity, error) {
	token, err := s.tokens.Resolve(plaintext)
	if err != nil {
		return Identity{}, err
	}
	return Identity{User: &token.User, TokenID: token.ID}, nil
}
