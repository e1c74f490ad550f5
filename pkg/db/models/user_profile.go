package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds the extended career/social fields, one row per user.
// The primary key is the owning user's id.
type UserProfile struct {
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey;column:user_id"`
	Title        *string    `gorm:"column:title"`
	Department   *string    `gorm:"column:department"`
	Location     *string    `gorm:"column:location"`
	Bio          *string    `gorm:"column:bio;type:text"`
	CustomStatus *string    `gorm:"column:custom_status"`
	StatusEmoji  *string    `gorm:"column:status_emoji"`
	StatusExpiry *time.Time `gorm:"column:status_expiry"`
	Pronouns     *string    `gorm:"column:pronouns"`
	Birthday     *time.Time `gorm:"column:birthday"`
	LinkedinURL  *string    `gorm:"column:linkedin_url"`
	TwitterURL   *string    `gorm:"column:twitter_url"`
	GithubURL    *string    `gorm:"column:github_url"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (UserProfile) TableName() string {
	return "user_profiles"
}
