package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ApiErrorType classifies failures surfaced at the HTTP boundary.
type ApiErrorType int

const (
	ApiErrorTypeUnknown ApiErrorType = iota
	ApiErrorTypeBadParam
	ApiErrorTypeMissingParam
	ApiErrorTypeAlreadyRegistered
	ApiErrorTypeNotPermitted
	ApiErrorTypeConflict
)

var apiErrorTypeNames = [...]string{
	"unknown", "bad_param", "missing_param", "already_registered", "not_permitted", "conflict",
}

func (t ApiErrorType) String() string {
	if t < 0 || int(t) >= len(apiErrorTypeNames) {
		return fmt.Sprintf("ApiErrorType(%d)", int(t))
	}
	return apiErrorTypeNames[t]
}

func (t ApiErrorType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type ApiError struct {
	Type    ApiErrorType
	Details []string
}

func (res ApiError) Description() string {
	switch res.Type {
	case ApiErrorTypeBadParam:
		return "A validation error occurred"
	case ApiErrorTypeMissingParam:
		return "A required parameter is missing"
	case ApiErrorTypeAlreadyRegistered:
		return "An account with this email is already registered"
	case ApiErrorTypeNotPermitted:
		return "The operation is not permitted"
	case ApiErrorTypeConflict:
		return "The operation conflicts with the current state"
	default:
		return "An unknown error occurred"
	}
}

func (res ApiError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        ApiErrorType `json:"error"`
		Description string       `json:"error_description"`
		Details     []string     `json:"error_details"`
	}{
		Type:        res.Type,
		Description: res.Description(),
		Details:     res.Details,
	})
}

func (res ApiError) Error() string {
	return fmt.Sprintf("%s: %s\n%s", res.Type, res.Description(), strings.Join(res.Details, "\n"))
}
