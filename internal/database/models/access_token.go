package models

import "time"

// AccessToken stores opaque bearer tokens issued at registration and login.
// Only the SHA-256 digest of the token is persisted; the plaintext is
// returned to the client exactly once and cannot be recovered afterwards.
// Tokens have no expiry and live until revoked. Soft-deleting a user does
// not cascade to its tokens.
type AccessToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (AccessToken) TableName() string {
	return "access_tokens"
}
