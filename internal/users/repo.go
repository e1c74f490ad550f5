package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/db/models"
	"github.com/quikapp/user-service/pkg/enums"
	"github.com/quikapp/user-service/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repo bound to the given transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// SearchQuery is the predicate for paginated user search.
type SearchQuery struct {
	Query      string
	Status     *enums.UserStatus
	Pagination pagination.Params
}

// SearchResult carries one page of users plus the total count for the same
// predicate.
type SearchResult struct {
	Users []models.User
	Total int64
}

// CreateWithAggregates inserts the user plus its empty profile and default
// preferences in a single transaction. None of the three rows is observable
// unless all writes succeed.
func (r *Repository) CreateWithAggregates(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := r.WithTx(tx)
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if _, err := scoped.CreateProfile(ctx, user.ID); err != nil {
			return err
		}
		_, err := scoped.CreatePreferences(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email. The lookup key
// is normalized to lowercase to match stored values.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeKey(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves the user matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", normalizeKey(username)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether any user holds the email, case-insensitively.
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", normalizeKey(email)).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUsername reports whether any user holds the username, case-insensitively.
func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", normalizeKey(username)).
		Count(&count).Error
	return count > 0, err
}

// FindByIDs loads the users matching the given ids. Unknown ids are simply
// absent from the result; order is not guaranteed.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var found []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Search runs a case-insensitive substring match across username, display
// name and email, optionally filtered by status, ordered by display name.
func (r *Repository) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q.Query)) + "%"

	// Fresh chain per statement; GORM accumulates clauses on reuse.
	scoped := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("(LOWER(username) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?)",
				pattern, pattern, pattern)
		if q.Status != nil {
			tx = tx.Where("status = ?", *q.Status)
		}
		return tx
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, err
	}

	params := q.Pagination.Normalize()
	var page []models.User
	err := scoped().
		Order("display_name ASC").
		Limit(params.Size).
		Offset(params.Offset()).
		Find(&page).Error
	if err != nil {
		return nil, err
	}

	return &SearchResult{Users: page, Total: total}, nil
}

// SaveUser persists all fields of the user row.
func (r *Repository) SaveUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateStatus transitions the user's status column.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateLastLogin refreshes the user's login stamp and source address.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time, ip *string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_login_at": at, "last_login_ip": ip}).Error
}

// FindProfile loads the profile row for the user id.
func (r *Repository) FindProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile persists all fields of the profile row.
func (r *Repository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// CreateProfile inserts an empty profile row for the user id.
func (r *Repository) CreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile := &models.UserProfile{UserID: userID}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindPreferences loads the preferences row for the user id.
func (r *Repository) FindPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences persists all fields of the preferences row.
func (r *Repository) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

// CreatePreferences inserts a default preferences row for the user id.
func (r *Repository) CreatePreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := models.DefaultPreferences(userID)
	if err := r.db.WithContext(ctx).Create(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
