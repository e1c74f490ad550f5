package controllers

import (
	"net/http"

	"github.com/quikapp/user-service/api/responses"
	"github.com/quikapp/user-service/api/validators"
	usersvc "github.com/quikapp/user-service/internal/users"
	"github.com/quikapp/user-service/pkg/logger"
)

// GetPreferences returns the preferences sub-resource, materializing the
// defaults for users that never saved any.
func GetPreferences(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.GetPreferences(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

// UpdatePreferences merges the provided fields into the preferences.
func UpdatePreferences(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePreferencesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.UpdatePreferences(r.Context(), id, usersvc.UpdatePreferencesInput{
			PushEnabled:             payload.PushEnabled,
			EmailEnabled:            payload.EmailEnabled,
			SMSEnabled:              payload.SMSEnabled,
			DesktopNotifications:    payload.DesktopNotifications,
			SoundEnabled:            payload.SoundEnabled,
			QuietHoursStart:         payload.QuietHoursStart,
			QuietHoursEnd:           payload.QuietHoursEnd,
			QuietHoursEnabled:       payload.QuietHoursEnabled,
			Theme:                   payload.Theme,
			Language:                payload.Language,
			CompactMode:             payload.CompactMode,
			SidebarCollapsed:        payload.SidebarCollapsed,
			ShowUnreadOnly:          payload.ShowUnreadOnly,
			MessagePreview:          payload.MessagePreview,
			EnterToSend:             payload.EnterToSend,
			MarkdownEnabled:         payload.MarkdownEnabled,
			EmojiSuggestionsEnabled: payload.EmojiSuggestionsEnabled,
			ShowOnlineStatus:        payload.ShowOnlineStatus,
			ShowTypingIndicator:     payload.ShowTypingIndicator,
			ShowReadReceipts:        payload.ShowReadReceipts,
			ReducedMotion:           payload.ReducedMotion,
			HighContrast:            payload.HighContrast,
			FontSize:                payload.FontSize,
			CustomSettings:          payload.CustomSettings,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

type updatePreferencesRequest struct {
	PushEnabled          *bool `json:"pushEnabled,omitempty"`
	EmailEnabled         *bool `json:"emailEnabled,omitempty"`
	SMSEnabled           *bool `json:"smsEnabled,omitempty"`
	DesktopNotifications *bool `json:"desktopNotifications,omitempty"`
	SoundEnabled         *bool `json:"soundEnabled,omitempty"`

	QuietHoursStart   *string `json:"quietHoursStart,omitempty"`
	QuietHoursEnd     *string `json:"quietHoursEnd,omitempty"`
	QuietHoursEnabled *bool   `json:"quietHoursEnabled,omitempty"`

	Theme                   *string `json:"theme,omitempty"`
	Language                *string `json:"language,omitempty" validate:"omitempty,max=10"`
	CompactMode             *bool   `json:"compactMode,omitempty"`
	SidebarCollapsed        *bool   `json:"sidebarCollapsed,omitempty"`
	ShowUnreadOnly          *bool   `json:"showUnreadOnly,omitempty"`
	MessagePreview          *bool   `json:"messagePreview,omitempty"`
	EnterToSend             *bool   `json:"enterToSend,omitempty"`
	MarkdownEnabled         *bool   `json:"markdownEnabled,omitempty"`
	EmojiSuggestionsEnabled *bool   `json:"emojiSuggestionsEnabled,omitempty"`

	ShowOnlineStatus    *bool `json:"showOnlineStatus,omitempty"`
	ShowTypingIndicator *bool `json:"showTypingIndicator,omitempty"`
	ShowReadReceipts    *bool `json:"showReadReceipts,omitempty"`

	ReducedMotion *bool `json:"reducedMotion,omitempty"`
	HighContrast  *bool `json:"highContrast,omitempty"`
	FontSize      *int  `json:"fontSize,omitempty"`

	CustomSettings *map[string]any `json:"customSettings,omitempty"`
}
