package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"useradmin/internal/database/models"
)

// UserRepository defines the interface for user data operations. Methods
// suffixed WithDeleted look past the soft-delete scope; admin operations
// resolve users regardless of deletion state.
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByEmailWithDeleted(email string) (*models.User, error)
	FindByIDWithDeleted(id uint) (*models.User, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	SoftDelete(id uint) error
	Restore(id uint) error
	List(offset, limit int) ([]models.User, int64, error)
	Transaction(fn func(UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailWithDeleted(email string) (*models.User, error) {
	var user models.User
	err := r.db.Unscoped().Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithDeleted(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Unscoped().First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := r.db.Unscoped().Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SoftDelete re-sets deleted_at unconditionally; deleting an already
// deleted user refreshes the timestamp rather than failing.
func (r *userRepository) SoftDelete(id uint) error {
	result := r.db.Unscoped().Model(&models.User{}).Where("id = ?", id).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Restore(id uint) error {
	result := r.db.Unscoped().Model(&models.User{}).Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns users in creation order, soft-deleted rows included.
func (r *userRepository) List(offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Unscoped().Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.Unscoped().Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction. Used to keep find-then-insert-or-update sequences atomic.
func (r *userRepository) Transaction(fn func(UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")
)
