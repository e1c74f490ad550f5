package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quikapp/user-service/api/responses"
	"github.com/quikapp/user-service/api/validators"
	usersvc "github.com/quikapp/user-service/internal/users"
	pkgerrors "github.com/quikapp/user-service/pkg/errors"
	"github.com/quikapp/user-service/pkg/logger"
	"github.com/quikapp/user-service/pkg/pagination"
	"github.com/quikapp/user-service/pkg/types"
)

// CreateUser handles account registration.
func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.CreateUser(r.Context(), usersvc.CreateUserInput{
			Email:       payload.Email,
			Username:    payload.Username,
			DisplayName: payload.DisplayName,
			AvatarURL:   payload.AvatarURL,
			Phone:       payload.Phone,
			Timezone:    payload.Timezone,
			Locale:      payload.Locale,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// GetUser fetches a user by id.
func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// GetUserByEmail fetches a user by its unique email.
func GetUserByEmail(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(chi.URLParam(r, "email"))
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email is required"))
			return
		}

		user, err := svc.GetByEmail(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// GetUserByUsername fetches a user by its unique username.
func GetUserByUsername(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(chi.URLParam(r, "username"))
		if username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "username is required"))
			return
		}

		user, err := svc.GetByUsername(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// UpdateUser applies a partial update to the base user record.
func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateUser(r.Context(), id, usersvc.UpdateUserInput{
			DisplayName: payload.DisplayName,
			AvatarURL:   payload.AvatarURL,
			Phone:       payload.Phone,
			Timezone:    payload.Timezone,
			Locale:      payload.Locale,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// DeactivateUser moves the account to INACTIVE.
func DeactivateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return statusTransition(svc.DeactivateUser, logg)
}

// SuspendUser moves the account to SUSPENDED.
func SuspendUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return statusTransition(svc.SuspendUser, logg)
}

func statusTransition(transition func(ctx context.Context, id uuid.UUID) error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := transition(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SearchUsers lists users matching the free-text query with pagination.
func SearchUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := validators.ParseStatusQuery(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("query"))

		result, err := svc.SearchUsers(r.Context(), query, status, pagination.Params{Page: page, Size: size})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.PagedResult{
			Content: result.Users,
			Meta:    result.Meta,
		})
	}
}

// BatchGetUsers resolves a list of user ids into summaries. Unknown ids are
// dropped silently.
func BatchGetUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload batchGetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]uuid.UUID, 0, len(payload.IDs))
		for _, raw := range payload.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "ids must be UUIDs").WithDetails(map[string]any{"value": raw}))
				return
			}
			ids = append(ids, id)
		}

		users, err := svc.GetUsersByIDs(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

type createUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Timezone    *string `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Locale      *string `json:"locale,omitempty" validate:"omitempty,max=10"`
}

type updateUserRequest struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Timezone    *string `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Locale      *string `json:"locale,omitempty" validate:"omitempty,max=10"`
}

type batchGetRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}
