package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/db/models"
	"github.com/quikapp/user-service/pkg/enums"
	"github.com/quikapp/user-service/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  username TEXT NOT NULL UNIQUE,
  display_name TEXT,
  avatar_url TEXT,
  phone TEXT,
  timezone TEXT NOT NULL DEFAULT 'UTC',
  locale TEXT NOT NULL DEFAULT 'en',
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  email_verified INTEGER NOT NULL DEFAULT 0,
  phone_verified INTEGER NOT NULL DEFAULT 0,
  last_login_at DATETIME,
  last_login_ip TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	profiles := `
CREATE TABLE IF NOT EXISTS user_profiles (
  user_id TEXT PRIMARY KEY,
  title TEXT,
  department TEXT,
  location TEXT,
  bio TEXT,
  custom_status TEXT,
  status_emoji TEXT,
  status_expiry DATETIME,
  pronouns TEXT,
  birthday DATETIME,
  linkedin_url TEXT,
  twitter_url TEXT,
  github_url TEXT,
  updated_at DATETIME
);`
	preferences := `
CREATE TABLE IF NOT EXISTS user_preferences (
  user_id TEXT PRIMARY KEY,
  push_enabled INTEGER NOT NULL DEFAULT 1,
  email_enabled INTEGER NOT NULL DEFAULT 1,
  sms_enabled INTEGER NOT NULL DEFAULT 0,
  desktop_notifications INTEGER NOT NULL DEFAULT 1,
  sound_enabled INTEGER NOT NULL DEFAULT 1,
  quiet_hours_start TEXT,
  quiet_hours_end TEXT,
  quiet_hours_enabled INTEGER NOT NULL DEFAULT 0,
  theme TEXT NOT NULL DEFAULT 'system',
  language TEXT NOT NULL DEFAULT 'en',
  compact_mode INTEGER NOT NULL DEFAULT 0,
  sidebar_collapsed INTEGER NOT NULL DEFAULT 0,
  show_unread_only INTEGER NOT NULL DEFAULT 0,
  message_preview INTEGER NOT NULL DEFAULT 1,
  enter_to_send INTEGER NOT NULL DEFAULT 1,
  markdown_enabled INTEGER NOT NULL DEFAULT 1,
  emoji_suggestions_enabled INTEGER NOT NULL DEFAULT 1,
  show_online_status INTEGER NOT NULL DEFAULT 1,
  show_typing_indicator INTEGER NOT NULL DEFAULT 1,
  show_read_receipts INTEGER NOT NULL DEFAULT 1,
  reduced_motion INTEGER NOT NULL DEFAULT 0,
  high_contrast INTEGER NOT NULL DEFAULT 0,
  font_size INTEGER NOT NULL DEFAULT 14,
  custom_settings TEXT,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(profiles).Error)
	require.NoError(t, db.Exec(preferences).Error)
	return db
}

func uniqueIdentity(prefix string) (string, string) {
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s@example.com", prefix, token), fmt.Sprintf("%s_%s", prefix, token)
}

func mustCreateUser(t *testing.T, repo *Repository, prefix string) *models.User {
	t.Helper()

	email, username := uniqueIdentity(prefix)
	user, err := repo.CreateWithAggregates(context.Background(), &models.User{
		Email:    email,
		Username: username,
		Timezone: "UTC",
		Locale:   "en",
		Status:   enums.UserStatusActive,
	})
	require.NoError(t, err)
	return user
}

func TestCreateWithAggregatesWritesAllThreeRows(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	user := mustCreateUser(t, repo, "cascade")

	require.NotEqual(t, uuid.Nil, user.ID)

	profile, err := repo.FindProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Nil(t, profile.Bio)

	prefs, err := repo.FindPreferences(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.PushEnabled)
	assert.Equal(t, "system", prefs.Theme)
	assert.Equal(t, 14, prefs.FontSize)
}

func TestCreateWithAggregatesRollsBackOnPartialFailure(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	email, username := uniqueIdentity("rollback")
	userID := uuid.New()

	// A pre-existing profile row forces the second insert to fail; the user
	// row must not survive the transaction.
	require.NoError(t, db.Create(&models.UserProfile{UserID: userID}).Error)

	_, err := repo.CreateWithAggregates(context.Background(), &models.User{
		ID:       userID,
		Email:    email,
		Username: username,
		Timezone: "UTC",
		Locale:   "en",
		Status:   enums.UserStatusActive,
	})
	require.Error(t, err)

	_, err = repo.FindByEmail(context.Background(), email)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByEmailAndUsernameNormalizeCase(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	user := mustCreateUser(t, repo, "lookup")

	byEmail, err := repo.FindByEmail(context.Background(), "  "+upperFirst(user.Email))
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername(context.Background(), upperFirst(user.Username))
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)
}

func upperFirst(v string) string {
	if v == "" {
		return v
	}
	return string(v[0]-'a'+'A') + v[1:]
}

func TestExistsProbes(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	user := mustCreateUser(t, repo, "exists")

	taken, err := repo.ExistsByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsByEmail(context.Background(), "nobody_"+user.Email)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestFindByIDsDropsUnknown(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	a := mustCreateUser(t, repo, "batch_a")
	b := mustCreateUser(t, repo, "batch_b")

	found, err := repo.FindByIDs(context.Background(), []uuid.UUID{a.ID, uuid.New(), b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchMatchesAcrossFieldsAndPaginates(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// The token scopes the assertions to this test's rows; the shared
	// in-memory DB may hold rows from other tests.
	token := "srch" + uuid.NewString()[:6]

	mkUser := func(username, displayName string, status enums.UserStatus) {
		name := displayName
		_, err := repo.CreateWithAggregates(ctx, &models.User{
			Email:       username + "@example.com",
			Username:    username,
			DisplayName: &name,
			Timezone:    "UTC",
			Locale:      "en",
			Status:      status,
		})
		require.NoError(t, err)
	}

	mkUser(token+"_alice", "Beta "+token, enums.UserStatusActive)
	mkUser(token+"_bob", "Alpha "+token, enums.UserStatusActive)
	mkUser(token+"_carol", "Gamma "+token, enums.UserStatusSuspended)

	result, err := repo.Search(ctx, SearchQuery{
		Query:      token,
		Pagination: pagination.Params{Page: 0, Size: 10},
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.Len(t, result.Users, 3)

	// Ordered by display name ascending.
	assert.Equal(t, "Alpha "+token, *result.Users[0].DisplayName)
	assert.Equal(t, "Beta "+token, *result.Users[1].DisplayName)
	assert.Equal(t, "Gamma "+token, *result.Users[2].DisplayName)

	// Case-insensitive substring on username.
	upper, err := repo.Search(ctx, SearchQuery{
		Query:      "_ALICE",
		Pagination: pagination.Params{Page: 0, Size: 10},
	})
	require.NoError(t, err)
	found := false
	for _, u := range upper.Users {
		if u.Username == token+"_alice" {
			found = true
		}
	}
	assert.True(t, found, "case-insensitive username match expected")

	// Status filter narrows the result.
	suspended := enums.UserStatusSuspended
	filtered, err := repo.Search(ctx, SearchQuery{
		Query:      token,
		Status:     &suspended,
		Pagination: pagination.Params{Page: 0, Size: 10},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, filtered.Total)
	assert.Equal(t, token+"_carol", filtered.Users[0].Username)

	// Page slicing keeps the full count.
	paged, err := repo.Search(ctx, SearchQuery{
		Query:      token,
		Pagination: pagination.Params{Page: 1, Size: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, paged.Total)
	assert.Len(t, paged.Users, 1)
}

func TestUpdateStatusAndLastLogin(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()
	user := mustCreateUser(t, repo, "status")

	assert.True(t, user.IsActive())

	require.NoError(t, repo.UpdateStatus(ctx, user.ID, enums.UserStatusSuspended))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.UserStatusSuspended, reloaded.Status)
	assert.False(t, reloaded.IsActive())

	ip := "10.1.2.3"
	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at, &ip))

	reloaded, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	require.NotNil(t, reloaded.LastLoginIP)
	assert.Equal(t, ip, *reloaded.LastLoginIP)
}

func TestProfileAndPreferencesSaves(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()
	user := mustCreateUser(t, repo, "aggregate")

	profile, err := repo.FindProfile(ctx, user.ID)
	require.NoError(t, err)

	bio := "hello"
	profile.Bio = &bio
	require.NoError(t, repo.SaveProfile(ctx, profile))

	reloaded, err := repo.FindProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Bio)
	assert.Equal(t, bio, *reloaded.Bio)

	prefs, err := repo.FindPreferences(ctx, user.ID)
	require.NoError(t, err)
	prefs.Theme = "dark"
	prefs.CustomSettings = map[string]any{"beta": true}
	require.NoError(t, repo.SavePreferences(ctx, prefs))

	reloadedPrefs, err := repo.FindPreferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", reloadedPrefs.Theme)
	assert.Equal(t, true, reloadedPrefs.CustomSettings["beta"])
}
