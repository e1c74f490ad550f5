package types

import "github.com/quikapp/user-service/pkg/pagination"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PagedResult flattens page metadata next to the content slice.
type PagedResult struct {
	Content any `json:"content"`
	pagination.Meta
}
