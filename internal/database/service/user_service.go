package service

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"useradmin/internal/database/models"
	"useradmin/internal/database/repository"
)

// UsersPerPage is the fixed page size for user listings
const UsersPerPage = 10

// UpdateUserInput carries the allow-listed fields of a partial user update.
// A nil field means "leave untouched"; caller-supplied keys are never
// forwarded to storage directly.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService defines the interface for the account lifecycle business logic
type UserService interface {
	CreateOrResurrect(name, email, password, role string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	Get(id uint) (*models.User, error)
	List(page int) ([]models.User, int64, error)
	Update(id uint, input UpdateUserInput) (*models.User, error)
	SoftDelete(id uint) error
	Restore(id uint) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateOrResurrect inserts a new user, or, when a soft-deleted user already
// holds the email, overwrites that row and clears its deletion marker so the
// original id survives. An active user holding the email is rejected. The
// find-then-insert-or-update sequence runs in one transaction; a concurrent
// registration racing for the same email loses on the partial unique index
// and surfaces as ErrEmailTaken.
func (s *userService) CreateOrResurrect(name, email, password, role string) (*models.User, error) {
	s.logger.Info("📝 [UserService] Creating user", "email", email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
		return nil, err
	}

	var user *models.User
	err = s.userRepo.Transaction(func(tx repository.UserRepository) error {
		existing, err := tx.FindByEmailWithDeleted(email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		if existing != nil && !existing.IsDeleted() {
			return ErrEmailTaken
		}

		if existing != nil {
			// Resurrect: overwrite fields, clear the deletion marker, keep the id.
			fields := map[string]interface{}{
				"name":       name,
				"email":      email,
				"password":   string(hashedPassword),
				"role":       role,
				"deleted_at": nil,
			}
			if err := tx.UpdateFields(existing.ID, fields); err != nil {
				return err
			}
			user, err = tx.FindByIDWithDeleted(existing.ID)
			return err
		}

		user = &models.User{
			Name:     name,
			Email:    email,
			Password: string(hashedPassword),
			Role:     role,
		}
		return tx.Create(user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = ErrEmailTaken
		}
		if errors.Is(err, ErrEmailTaken) {
			s.logger.Warn("⚠️ [UserService] Email already taken", "email", email)
		} else {
			s.logger.Error("❌ [UserService] Failed to create user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("✅ [UserService] User created", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials against the stored hash. The lookup
// deliberately includes soft-deleted rows; whether a soft-deleted user may
// still log in is unresolved product behavior and is preserved as is.
// Failures collapse into a single generic error to avoid account enumeration.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	s.logger.Info("🔐 [UserService] Authentication attempt", "email", email)

	user, err := s.userRepo.FindByEmailWithDeleted(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [UserService] Unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [UserService] Database error", "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [UserService] Password mismatch", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("✅ [UserService] Authenticated", "user_id", user.ID)
	return user, nil
}

func (s *userService) Get(id uint) (*models.User, error) {
	return s.userRepo.FindByIDWithDeleted(id)
}

func (s *userService) List(page int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.userRepo.List((page-1)*UsersPerPage, UsersPerPage)
}

// Update applies the present fields of input; absent fields are left
// untouched. An email change must not collide with another active user.
func (s *userService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	s.logger.Info("✏️ [UserService] Updating user", "user_id", id)

	user, err := s.userRepo.FindByIDWithDeleted(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		holder, err := s.userRepo.FindByEmail(*input.Email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		if holder != nil && holder.ID != user.ID {
			s.logger.Warn("⚠️ [UserService] Email already taken", "email", *input.Email)
			return nil, ErrEmailTaken
		}
		fields["email"] = *input.Email
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hashedPassword)
	}
	if input.Role != nil {
		fields["role"] = *input.Role
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(user.ID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			s.logger.Error("❌ [UserService] Failed to update user", "user_id", id, "error", err)
			return nil, err
		}
	}

	s.logger.Info("✅ [UserService] User updated", "user_id", id)
	return s.userRepo.FindByIDWithDeleted(user.ID)
}

// SoftDelete marks the user deleted. Existing tokens are not revoked;
// preserved as current behavior pending product confirmation.
func (s *userService) SoftDelete(id uint) error {
	s.logger.Info("🗑️ [UserService] Soft-deleting user", "user_id", id)

	if err := s.userRepo.SoftDelete(id); err != nil {
		return err
	}

	s.logger.Info("✅ [UserService] User soft-deleted", "user_id", id)
	return nil
}

func (s *userService) Restore(id uint) (*models.User, error) {
	s.logger.Info("♻️ [UserService] Restoring user", "user_id", id)

	user, err := s.userRepo.FindByIDWithDeleted(id)
	if err != nil {
		return nil, err
	}

	if !user.IsDeleted() {
		s.logger.Warn("⚠️ [UserService] User is not deleted", "user_id", id)
		return nil, ErrUserNotDeleted
	}

	if err := s.userRepo.Restore(id); err != nil {
		return nil, err
	}

	s.logger.Info("✅ [UserService] User restored", "user_id", id)
	return s.userRepo.FindByIDWithDeleted(id)
}

// Service errors
var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotDeleted     = errors.New("user is not deleted")
)
