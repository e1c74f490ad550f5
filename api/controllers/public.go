package controllers

import (
	"net/http"

	"github.com/quikapp/user-service/api/responses"
)

// PublicPing answers without credentials. Load balancers and uptime checks
// use it.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
