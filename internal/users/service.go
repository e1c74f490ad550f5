package users

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/internal/events"
	"github.com/quikapp/user-service/pkg/db/models"
	dbtypes "github.com/quikapp/user-service/pkg/db/types"
	"github.com/quikapp/user-service/pkg/enums"
	pkgerrors "github.com/quikapp/user-service/pkg/errors"
	"github.com/quikapp/user-service/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes the account lifecycle operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	GetByEmail(ctx context.Context, email string) (*UserDTO, error)
	GetByUsername(ctx context.Context, username string) (*UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	SuspendUser(ctx context.Context, id uuid.UUID) error
	SearchUsers(ctx context.Context, query string, status *enums.UserStatus, params pagination.Params) (*SearchPage, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]UserSummaryDTO, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	GetPreferences(ctx context.Context, id uuid.UUID) (*PreferencesDTO, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, input UpdatePreferencesInput) (*PreferencesDTO, error)
	RecordLogin(ctx context.Context, id uuid.UUID, ip *string) error
}

// SearchPage is one page of user summaries plus position metadata.
type SearchPage struct {
	Users []UserSummaryDTO `json:"content"`
	Meta  pagination.Meta  `json:"-"`
}

type store interface {
	CreateWithAggregates(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	SaveUser(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time, ip *string) error
	FindProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	CreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	FindPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *models.UserPreferences) error
	CreatePreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
}

type userCache interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, bool)
	PutUser(ctx context.Context, user *UserDTO)
	Evict(ctx context.Context, id uuid.UUID)
}

type eventEmitter interface {
	Emit(eventType string, userID uuid.UUID, data map[string]any)
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var validThemes = map[string]struct{}{
	"light":  {},
	"dark":   {},
	"system": {},
}

var quietHoursRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type service struct {
	repo    store
	cache   userCache
	emitter eventEmitter
}

// NewService constructs the account lifecycle service.
func NewService(repo store, cache userCache, emitter eventEmitter) (Service, error) {
	if repo == nil {
		return nil, errors.New("user repository required")
	}
	if cache == nil {
		return nil, errors.New("user cache required")
	}
	if emitter == nil {
		return nil, errors.New("event emitter required")
	}
	return &service{repo: repo, cache: cache, emitter: emitter}, nil
}

// CreateUser persists the user with its empty profile and default preferences
// after checking both uniqueness constraints. No write happens on conflict.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	email := normalizeKey(input.Email)
	username := normalizeKey(input.Username)

	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !usernameRe.MatchString(username) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username may only contain letters, digits, underscore and hyphen")
	}

	emailTaken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check email")
	}
	if emailTaken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
	}

	usernameTaken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check username")
	}
	if usernameTaken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already in use")
	}

	user := &models.User{
		Email:       email,
		Username:    username,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
		Phone:       input.Phone,
		Timezone:    stringOrDefault(input.Timezone, "UTC"),
		Locale:      stringOrDefault(input.Locale, "en"),
		Status:      enums.UserStatusActive,
	}

	created, err := s.repo.CreateWithAggregates(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create user")
	}

	s.emitter.Emit(events.TypeUserCreated, created.ID, map[string]any{
		"id":       created.ID.String(),
		"email":    created.Email,
		"username": created.Username,
	})

	return FromUserModel(created), nil
}

// GetByID is the cached lookup path.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if cached, ok := s.cache.GetUser(ctx, id); ok {
		return cached, nil
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := FromUserModel(user)
	s.cache.PutUser(ctx, dto)
	return dto, nil
}

// GetByEmail bypasses the cache.
func (s *service) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user by email")
	}
	return FromUserModel(user), nil
}

// GetByUsername bypasses the cache.
func (s *service) GetByUsername(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user by username")
	}
	return FromUserModel(user), nil
}

// UpdateUser merges the non-nil fields onto the stored row. Email and
// username are not part of the accepted field set.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUserUpdate(user, input)
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save user")
	}

	s.cache.Evict(ctx, id)
	s.emitter.Emit(events.TypeUserUpdated, user.ID, map[string]any{
		"id":          user.ID.String(),
		"email":       user.Email,
		"displayName": derefOrEmpty(user.DisplayName),
	})

	return FromUserModel(user), nil
}

// DeactivateUser transitions the user to INACTIVE unconditionally.
func (s *service) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	return s.transitionStatus(ctx, id, enums.UserStatusInactive, events.TypeUserDeactivated)
}

// SuspendUser transitions the user to SUSPENDED unconditionally.
func (s *service) SuspendUser(ctx context.Context, id uuid.UUID) error {
	return s.transitionStatus(ctx, id, enums.UserStatusSuspended, events.TypeUserSuspended)
}

func (s *service) transitionStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus, eventType string) error {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update status")
	}

	s.cache.Evict(ctx, id)
	s.emitter.Emit(eventType, user.ID, map[string]any{
		"id":    user.ID.String(),
		"email": user.Email,
	})
	return nil
}

// SearchUsers matches the query against username, display name and email.
func (s *service) SearchUsers(ctx context.Context, query string, status *enums.UserStatus, params pagination.Params) (*SearchPage, error) {
	result, err := s.repo.Search(ctx, SearchQuery{Query: query, Status: status, Pagination: params})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search users")
	}

	summaries := make([]UserSummaryDTO, 0, len(result.Users))
	for i := range result.Users {
		summaries = append(summaries, SummaryFromUserModel(&result.Users[i]))
	}

	return &SearchPage{
		Users: summaries,
		Meta:  pagination.MetaFor(params, result.Total),
	}, nil
}

// GetUsersByIDs drops unknown ids silently; result order is unspecified.
func (s *service) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]UserSummaryDTO, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load users by ids")
	}

	summaries := make([]UserSummaryDTO, 0, len(found))
	for i := range found {
		summaries = append(summaries, SummaryFromUserModel(&found[i]))
	}
	return summaries, nil
}

// GetProfile returns the user's profile, creating an empty row if the
// cascade somehow never ran.
func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}

	profile, err := s.ensureProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromProfileModel(profile), nil
}

// UpdateProfile merges non-nil fields and emits PROFILE_UPDATED.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}

	profile, err := s.ensureProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(profile, input)
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save profile")
	}

	s.cache.Evict(ctx, id)

	data := map[string]any{"userId": id.String()}
	if profile.CustomStatus != nil {
		data["customStatus"] = *profile.CustomStatus
	}
	s.emitter.Emit(events.TypeProfileUpdated, id, data)

	return FromProfileModel(profile), nil
}

// GetPreferences returns the user's preferences, creating the default row if
// the cascade somehow never ran.
func (s *service) GetPreferences(ctx context.Context, id uuid.UUID) (*PreferencesDTO, error) {
	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}

	prefs, err := s.ensurePreferences(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromPreferencesModel(prefs), nil
}

// UpdatePreferences merges non-nil fields and emits PREFERENCES_UPDATED.
func (s *service) UpdatePreferences(ctx context.Context, id uuid.UUID, input UpdatePreferencesInput) (*PreferencesDTO, error) {
	if err := validatePreferencesInput(input); err != nil {
		return nil, err
	}

	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}

	prefs, err := s.ensurePreferences(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPreferencesUpdate(prefs, input)
	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save preferences")
	}

	s.cache.Evict(ctx, id)
	s.emitter.Emit(events.TypePreferencesUpdated, id, map[string]any{
		"userId": id.String(),
		"theme":  prefs.Theme,
	})

	return FromPreferencesModel(prefs), nil
}

// RecordLogin stamps the login time and source address. No event is emitted.
func (s *service) RecordLogin(ctx context.Context, id uuid.UUID, ip *string) error {
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}

	if err := s.repo.UpdateLastLogin(ctx, id, time.Now().UTC(), ip); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update last login")
	}

	s.cache.Evict(ctx, id)
	return nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}

func (s *service) ensureProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.repo.FindProfile(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load profile")
	}

	created, err := s.repo.CreateProfile(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create profile")
	}
	return created, nil
}

func (s *service) ensurePreferences(ctx context.Context, id uuid.UUID) (*models.UserPreferences, error) {
	prefs, err := s.repo.FindPreferences(ctx, id)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load preferences")
	}

	created, err := s.repo.CreatePreferences(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create preferences")
	}
	return created, nil
}

func validatePreferencesInput(input UpdatePreferencesInput) error {
	if input.Theme != nil {
		if _, ok := validThemes[*input.Theme]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "theme must be one of light, dark, system")
		}
	}
	if input.FontSize != nil && (*input.FontSize < 10 || *input.FontSize > 24) {
		return pkgerrors.New(pkgerrors.CodeValidation, "font_size must be between 10 and 24")
	}
	if input.QuietHoursStart != nil && !quietHoursRe.MatchString(*input.QuietHoursStart) {
		return pkgerrors.New(pkgerrors.CodeValidation, "quiet_hours_start must be HH:MM")
	}
	if input.QuietHoursEnd != nil && !quietHoursRe.MatchString(*input.QuietHoursEnd) {
		return pkgerrors.New(pkgerrors.CodeValidation, "quiet_hours_end must be HH:MM")
	}
	return nil
}

func applyUserUpdate(user *models.User, input UpdateUserInput) {
	if input.DisplayName != nil {
		user.DisplayName = input.DisplayName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.Locale != nil {
		user.Locale = *input.Locale
	}
}

func applyProfileUpdate(profile *models.UserProfile, input UpdateProfileInput) {
	if input.Title != nil {
		profile.Title = input.Title
	}
	if input.Department != nil {
		profile.Department = input.Department
	}
	if input.Location != nil {
		profile.Location = input.Location
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.CustomStatus != nil {
		profile.CustomStatus = input.CustomStatus
	}
	if input.StatusEmoji != nil {
		profile.StatusEmoji = input.StatusEmoji
	}
	if input.StatusExpiry != nil {
		profile.StatusExpiry = input.StatusExpiry
	}
	if input.Pronouns != nil {
		profile.Pronouns = input.Pronouns
	}
	if input.Birthday != nil {
		profile.Birthday = input.Birthday
	}
	if input.LinkedinURL != nil {
		profile.LinkedinURL = input.LinkedinURL
	}
	if input.TwitterURL != nil {
		profile.TwitterURL = input.TwitterURL
	}
	if input.GithubURL != nil {
		profile.GithubURL = input.GithubURL
	}
}

func applyPreferencesUpdate(prefs *models.UserPreferences, input UpdatePreferencesInput) {
	if input.PushEnabled != nil {
		prefs.PushEnabled = *input.PushEnabled
	}
	if input.EmailEnabled != nil {
		prefs.EmailEnabled = *input.EmailEnabled
	}
	if input.SMSEnabled != nil {
		prefs.SMSEnabled = *input.SMSEnabled
	}
	if input.DesktopNotifications != nil {
		prefs.DesktopNotifications = *input.DesktopNotifications
	}
	if input.SoundEnabled != nil {
		prefs.SoundEnabled = *input.SoundEnabled
	}
	if input.QuietHoursStart != nil {
		prefs.QuietHoursStart = input.QuietHoursStart
	}
	if input.QuietHoursEnd != nil {
		prefs.QuietHoursEnd = input.QuietHoursEnd
	}
	if input.QuietHoursEnabled != nil {
		prefs.QuietHoursEnabled = *input.QuietHoursEnabled
	}
	if input.Theme != nil {
		prefs.Theme = *input.Theme
	}
	if input.Language != nil {
		prefs.Language = *input.Language
	}
	if input.CompactMode != nil {
		prefs.CompactMode = *input.CompactMode
	}
	if input.SidebarCollapsed != nil {
		prefs.SidebarCollapsed = *input.SidebarCollapsed
	}
	if input.ShowUnreadOnly != nil {
		prefs.ShowUnreadOnly = *input.ShowUnreadOnly
	}
	if input.MessagePreview != nil {
		prefs.MessagePreview = *input.MessagePreview
	}
	if input.EnterToSend != nil {
		prefs.EnterToSend = *input.EnterToSend
	}
	if input.MarkdownEnabled != nil {
		prefs.MarkdownEnabled = *input.MarkdownEnabled
	}
	if input.EmojiSuggestionsEnabled != nil {
		prefs.EmojiSuggestionsEnabled = *input.EmojiSuggestionsEnabled
	}
	if input.ShowOnlineStatus != nil {
		prefs.ShowOnlineStatus = *input.ShowOnlineStatus
	}
	if input.ShowTypingIndicator != nil {
		prefs.ShowTypingIndicator = *input.ShowTypingIndicator
	}
	if input.ShowReadReceipts != nil {
		prefs.ShowReadReceipts = *input.ShowReadReceipts
	}
	if input.ReducedMotion != nil {
		prefs.ReducedMotion = *input.ReducedMotion
	}
	if input.HighContrast != nil {
		prefs.HighContrast = *input.HighContrast
	}
	if input.FontSize != nil {
		prefs.FontSize = *input.FontSize
	}
	if input.CustomSettings != nil {
		prefs.CustomSettings = dbtypes.JSONMap(*input.CustomSettings)
	}
}

func stringOrDefault(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
