package controllers

import (
	"net/http"
	"time"

	"github.com/quikapp/user-service/api/responses"
	"github.com/quikapp/user-service/api/validators"
	usersvc "github.com/quikapp/user-service/internal/users"
	"github.com/quikapp/user-service/pkg/logger"
)

// GetProfile returns the profile sub-resource, creating an empty one for
// users that never touched theirs.
func GetProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile merges the provided fields into the profile.
func UpdateProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), id, usersvc.UpdateProfileInput{
			Title:        payload.Title,
			Department:   payload.Department,
			Location:     payload.Location,
			Bio:          payload.Bio,
			CustomStatus: payload.CustomStatus,
			StatusEmoji:  payload.StatusEmoji,
			StatusExpiry: payload.StatusExpiry,
			Pronouns:     payload.Pronouns,
			Birthday:     payload.Birthday,
			LinkedinURL:  payload.LinkedinURL,
			TwitterURL:   payload.TwitterURL,
			GithubURL:    payload.GithubURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type updateProfileRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,max=100"`
	Department   *string    `json:"department,omitempty" validate:"omitempty,max=100"`
	Location     *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	Bio          *string    `json:"bio,omitempty" validate:"omitempty,max=1000"`
	CustomStatus *string    `json:"customStatus,omitempty" validate:"omitempty,max=100"`
	StatusEmoji  *string    `json:"statusEmoji,omitempty" validate:"omitempty,max=20"`
	StatusExpiry *time.Time `json:"statusExpiry,omitempty"`
	Pronouns     *string    `json:"pronouns,omitempty" validate:"omitempty,max=50"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	LinkedinURL  *string    `json:"linkedinUrl,omitempty" validate:"omitempty,max=500"`
	TwitterURL   *string    `json:"twitterUrl,omitempty" validate:"omitempty,max=500"`
	GithubURL    *string    `json:"githubUrl,omitempty" validate:"omitempty,max=500"`
}
