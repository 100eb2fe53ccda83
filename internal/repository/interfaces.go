package repository

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a setting has never been stored.
	ErrNotFound = errors.New("not found")

	// ErrUnknownKey is returned for keys outside the device settings set.
	ErrUnknownKey = errors.New("unknown setting key")
)

// Device setting keys. The store only ever holds these; plans, pins and
// tasks always come from the backend.
const (
	KeyCompanyID     = "company_id"
	KeyAuthToken     = "auth_token"
	KeyUserID        = "user_id"
	KeyUserName      = "user_name"
	KeyLastProjectID = "last_project_id"
)

var knownKeys = map[string]bool{
	KeyCompanyID:     true,
	KeyAuthToken:     true,
	KeyUserID:        true,
	KeyUserName:      true,
	KeyLastProjectID: true,
}

// checkKey rejects keys outside the device settings set, so a typo never
// creates a stray row.
func checkKey(key string) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// SettingsRepo is the device key/value store.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	All(ctx context.Context) (map[string]string, error)
}
