package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/enums"
)

// User represents the canonical identity entity. Email and username are stored
// lowercased; uniqueness is enforced case-insensitively at the storage layer.
type User struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string           `gorm:"type:text;not null;uniqueIndex"`
	Username      string           `gorm:"type:text;not null;uniqueIndex"`
	DisplayName   *string          `gorm:"column:display_name"`
	AvatarURL     *string          `gorm:"column:avatar_url"`
	Phone         *string          `gorm:"column:phone"`
	Timezone      string           `gorm:"column:timezone;not null;default:UTC"`
	Locale        string           `gorm:"column:locale;not null;default:en"`
	Status        enums.UserStatus `gorm:"column:status;type:text;not null;default:ACTIVE"`
	EmailVerified bool             `gorm:"column:email_verified;not null;default:false"`
	PhoneVerified bool             `gorm:"column:phone_verified;not null;default:false"`
	LastLoginAt   *time.Time       `gorm:"column:last_login_at"`
	LastLoginIP   *string          `gorm:"column:last_login_ip"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// IsActive reports whether the account is in the ACTIVE state.
func (u *User) IsActive() bool {
	return u.Status == enums.UserStatusActive
}

// EffectiveDisplayName falls back to the username when no display name is set.
func (u *User) EffectiveDisplayName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}
