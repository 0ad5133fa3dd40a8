package models

import (
	"time"

	"gorm.io/gorm"
)

// Available user roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents the user identity record. Email is unique among active
// rows only; a soft-deleted user's email may be reclaimed by a new
// registration, which resurrects the original row.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;index:idx_users_email_active,unique,where:deleted_at IS NULL" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDeleted reports whether the user is soft-deleted
func (u *User) IsDeleted() bool {
	return u.DeletedAt.Valid
}
