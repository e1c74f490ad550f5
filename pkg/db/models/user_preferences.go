package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/quikapp/user-service/pkg/db/types"
)

// UserPreferences holds per-user notification, UI, privacy and accessibility
// settings. The primary key is the owning user's id; column defaults mirror the
// values applied on cascade creation.
type UserPreferences struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id"`

	PushEnabled          bool `gorm:"column:push_enabled;not null;default:true"`
	EmailEnabled         bool `gorm:"column:email_enabled;not null;default:true"`
	SMSEnabled           bool `gorm:"column:sms_enabled;not null;default:false"`
	DesktopNotifications bool `gorm:"column:desktop_notifications;not null;default:true"`
	SoundEnabled         bool `gorm:"column:sound_enabled;not null;default:true"`

	QuietHoursStart   *string `gorm:"column:quiet_hours_start"`
	QuietHoursEnd     *string `gorm:"column:quiet_hours_end"`
	QuietHoursEnabled bool    `gorm:"column:quiet_hours_enabled;not null;default:false"`

	Theme                   string `gorm:"column:theme;not null;default:system"`
	Language                string `gorm:"column:language;not null;default:en"`
	CompactMode             bool   `gorm:"column:compact_mode;not null;default:false"`
	SidebarCollapsed        bool   `gorm:"column:sidebar_collapsed;not null;default:false"`
	ShowUnreadOnly          bool   `gorm:"column:show_unread_only;not null;default:false"`
	MessagePreview          bool   `gorm:"column:message_preview;not null;default:true"`
	EnterToSend             bool   `gorm:"column:enter_to_send;not null;default:true"`
	MarkdownEnabled         bool   `gorm:"column:markdown_enabled;not null;default:true"`
	EmojiSuggestionsEnabled bool   `gorm:"column:emoji_suggestions_enabled;not null;default:true"`

	ShowOnlineStatus    bool `gorm:"column:show_online_status;not null;default:true"`
	ShowTypingIndicator bool `gorm:"column:show_typing_indicator;not null;default:true"`
	ShowReadReceipts    bool `gorm:"column:show_read_receipts;not null;default:true"`

	ReducedMotion bool `gorm:"column:reduced_motion;not null;default:false"`
	HighContrast  bool `gorm:"column:high_contrast;not null;default:false"`
	FontSize      int  `gorm:"column:font_size;not null;default:14"`

	CustomSettings dbtypes.JSONMap `gorm:"column:custom_settings;type:json"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences returns the settings applied when a user is created.
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:                  userID,
		PushEnabled:             true,
		EmailEnabled:            true,
		SMSEnabled:              false,
		DesktopNotifications:    true,
		SoundEnabled:            true,
		QuietHoursEnabled:       false,
		Theme:                   "system",
		Language:                "en",
		MessagePreview:          true,
		EnterToSend:             true,
		MarkdownEnabled:         true,
		EmojiSuggestionsEnabled: true,
		ShowOnlineStatus:        true,
		ShowTypingIndicator:     true,
		ShowReadReceipts:        true,
		FontSize:                14,
		CustomSettings:          dbtypes.JSONMap{},
	}
}
