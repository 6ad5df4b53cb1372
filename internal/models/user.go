package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrPlaintextPassword is returned by the save hook when a password was set
// but never hashed.
var ErrPlaintextPassword = errors.New("password must be hashed before saving")

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      *string   `gorm:"type:varchar(255)" json:"name,omitempty"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tokens []UserToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	passwordDirty bool
}

// NormalizeUsername trims and lowercases a username the way it is stored.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// SetPassword stores a raw password and marks it for hashing.
func (u *User) SetPassword(raw string) {
	u.Password = raw
	u.passwordDirty = true
}

// SetPasswordHash replaces the raw password with its hash.
func (u *User) SetPasswordHash(hash string) {
	u.Password = hash
	u.passwordDirty = false
}

// PasswordDirty reports whether Password still holds a raw value.
func (u *User) PasswordDirty() bool {
	return u.passwordDirty
}

// DisplayName returns the name or an empty string.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

// BeforeSave refuses to persist an unhashed password and keeps the username normalized.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.passwordDirty {
		return ErrPlaintextPassword
	}
	u.Username = NormalizeUsername(u.Username)
	return nil
}

// UserToken is one active session token. Tokens are ordered by ID.
type UserToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	UserID    uint64    `gorm:"index;not null" json:"-"`
	Token     string    `gorm:"type:varchar(512);not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}
