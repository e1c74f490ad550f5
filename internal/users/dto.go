package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/db/models"
	dbtypes "github.com/quikapp/user-service/pkg/db/types"
	"github.com/quikapp/user-service/pkg/enums"
)

// UserDTO is the transport shape for a full user record. Field names follow
// the platform wire contract shared with the other QuikApp services.
type UserDTO struct {
	ID            uuid.UUID        `json:"id"`
	Email         string           `json:"email"`
	Username      string           `json:"username"`
	DisplayName   *string          `json:"displayName,omitempty"`
	AvatarURL     *string          `json:"avatarUrl,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Timezone      string           `json:"timezone"`
	Locale        string           `json:"locale"`
	Status        enums.UserStatus `json:"status"`
	EmailVerified bool             `json:"emailVerified"`
	PhoneVerified bool             `json:"phoneVerified"`
	LastLoginAt   *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// UserSummaryDTO is the reduced shape returned by search and batch lookups.
type UserSummaryDTO struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	Username    string           `json:"username"`
	DisplayName *string          `json:"displayName,omitempty"`
	AvatarURL   *string          `json:"avatarUrl,omitempty"`
	Status      enums.UserStatus `json:"status"`
}

// ProfileDTO is the transport shape for the profile sub-resource.
type ProfileDTO struct {
	UserID       uuid.UUID  `json:"userId"`
	Title        *string    `json:"title,omitempty"`
	Department   *string    `json:"department,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	CustomStatus *string    `json:"customStatus,omitempty"`
	StatusEmoji  *string    `json:"statusEmoji,omitempty"`
	StatusExpiry *time.Time `json:"statusExpiry,omitempty"`
	Pronouns     *string    `json:"pronouns,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	LinkedinURL  *string    `json:"linkedinUrl,omitempty"`
	TwitterURL   *string    `json:"twitterUrl,omitempty"`
	GithubURL    *string    `json:"githubUrl,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PreferencesDTO is the transport shape for the preferences sub-resource.
type PreferencesDTO struct {
	UserID uuid.UUID `json:"userId"`

	PushEnabled          bool `json:"pushEnabled"`
	EmailEnabled         bool `json:"emailEnabled"`
	SMSEnabled           bool `json:"smsEnabled"`
	DesktopNotifications bool `json:"desktopNotifications"`
	SoundEnabled         bool `json:"soundEnabled"`

	QuietHoursStart   *string `json:"quietHoursStart,omitempty"`
	QuietHoursEnd     *string `json:"quietHoursEnd,omitempty"`
	QuietHoursEnabled bool    `json:"quietHoursEnabled"`

	Theme                   string `json:"theme"`
	Language                string `json:"language"`
	CompactMode             bool   `json:"compactMode"`
	SidebarCollapsed        bool   `json:"sidebarCollapsed"`
	ShowUnreadOnly          bool   `json:"showUnreadOnly"`
	MessagePreview          bool   `json:"messagePreview"`
	EnterToSend             bool   `json:"enterToSend"`
	MarkdownEnabled         bool   `json:"markdownEnabled"`
	EmojiSuggestionsEnabled bool   `json:"emojiSuggestionsEnabled"`

	ShowOnlineStatus    bool `json:"showOnlineStatus"`
	ShowTypingIndicator bool `json:"showTypingIndicator"`
	ShowReadReceipts    bool `json:"showReadReceipts"`

	ReducedMotion bool `json:"reducedMotion"`
	HighContrast  bool `json:"highContrast"`
	FontSize      int  `json:"fontSize"`

	CustomSettings map[string]any `json:"customSettings"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserInput holds the validated payload for account creation. Optional
// fields default at persist time.
type CreateUserInput struct {
	Email       string
	Username    string
	DisplayName *string
	AvatarURL   *string
	Phone       *string
	Timezone    *string
	Locale      *string
}

// UpdateUserInput holds optional mutation values for a user. Nil means leave
// the field unchanged. Email and username are immutable through this path.
type UpdateUserInput struct {
	DisplayName *string
	AvatarURL   *string
	Phone       *string
	Timezone    *string
	Locale      *string
}

// UpdateProfileInput holds optional mutation values for a profile.
type UpdateProfileInput struct {
	Title        *string
	Department   *string
	Location     *string
	Bio          *string
	CustomStatus *string
	StatusEmoji  *string
	StatusExpiry *time.Time
	Pronouns     *string
	Birthday     *time.Time
	LinkedinURL  *string
	TwitterURL   *string
	GithubURL    *string
}

// UpdatePreferencesInput holds optional mutation values for preferences.
type UpdatePreferencesInput struct {
	PushEnabled          *bool
	EmailEnabled         *bool
	SMSEnabled           *bool
	DesktopNotifications *bool
	SoundEnabled         *bool

	QuietHoursStart   *string
	QuietHoursEnd     *string
	QuietHoursEnabled *bool

	Theme                   *string
	Language                *string
	CompactMode             *bool
	SidebarCollapsed        *bool
	ShowUnreadOnly          *bool
	MessagePreview          *bool
	EnterToSend             *bool
	MarkdownEnabled         *bool
	EmojiSuggestionsEnabled *bool

	ShowOnlineStatus    *bool
	ShowTypingIndicator *bool
	ShowReadReceipts    *bool

	ReducedMotion *bool
	HighContrast  *bool
	FontSize      *int

	CustomSettings *map[string]any
}

func FromUserModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Phone:         u.Phone,
		Timezone:      u.Timezone,
		Locale:        u.Locale,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func SummaryFromUserModel(u *models.User) UserSummaryDTO {
	// Summaries always carry a display name; the username stands in when the
	// user never set one.
	displayName := u.EffectiveDisplayName()
	return UserSummaryDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: &displayName,
		AvatarURL:   u.AvatarURL,
		Status:      u.Status,
	}
}

func FromProfileModel(p *models.UserProfile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		UserID:       p.UserID,
		Title:        p.Title,
		Department:   p.Department,
		Location:     p.Location,
		Bio:          p.Bio,
		CustomStatus: p.CustomStatus,
		StatusEmoji:  p.StatusEmoji,
		StatusExpiry: p.StatusExpiry,
		Pronouns:     p.Pronouns,
		Birthday:     p.Birthday,
		LinkedinURL:  p.LinkedinURL,
		TwitterURL:   p.TwitterURL,
		GithubURL:    p.GithubURL,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromPreferencesModel(p *models.UserPreferences) *PreferencesDTO {
	if p == nil {
		return nil
	}

	custom := p.CustomSettings
	if custom == nil {
		custom = dbtypes.JSONMap{}
	}

	return &PreferencesDTO{
		UserID:                  p.UserID,
		PushEnabled:             p.PushEnabled,
		EmailEnabled:            p.EmailEnabled,
		SMSEnabled:              p.SMSEnabled,
		DesktopNotifications:    p.DesktopNotifications,
		SoundEnabled:            p.SoundEnabled,
		QuietHoursStart:         p.QuietHoursStart,
		QuietHoursEnd:           p.QuietHoursEnd,
		QuietHoursEnabled:       p.QuietHoursEnabled,
		Theme:                   p.Theme,
		Language:                p.Language,
		CompactMode:             p.CompactMode,
		SidebarCollapsed:        p.SidebarCollapsed,
		ShowUnreadOnly:          p.ShowUnreadOnly,
		MessagePreview:          p.MessagePreview,
		EnterToSend:             p.EnterToSend,
		MarkdownEnabled:         p.MarkdownEnabled,
		EmojiSuggestionsEnabled: p.EmojiSuggestionsEnabled,
		ShowOnlineStatus:        p.ShowOnlineStatus,
		ShowTypingIndicator:     p.ShowTypingIndicator,
		ShowReadReceipts:        p.ShowReadReceipts,
		ReducedMotion:           p.ReducedMotion,
		HighContrast:            p.HighContrast,
		FontSize:                p.FontSize,
		CustomSettings:          map[string]any(custom),
		UpdatedAt:               p.UpdatedAt,
	}
}
