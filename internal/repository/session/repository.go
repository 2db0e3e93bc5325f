package session

import (
	"context"
	"time"

	"kebuli-storefront/internal/domain"
)

// Session is the typed device-state record: the credential plus the cached
// role and profile display fields. One row per device id.
type Session struct {
	DeviceID  string
	AuthToken string
	Role      string
	Profile   domain.Profile
	UpdatedAt time.Time
}

// Authenticated reports whether the device holds a credential.
func (s Session) Authenticated() bool {
	return s.AuthToken != ""
}

// IsAdmin reports whether the cached role grants admin-console access.
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

type Repository interface {
	// Get returns the session for a device, or domain.ErrNotFound.
	Get(ctx context.Context, deviceID string) (*Session, error)
	// SaveCredential upserts token, role and cached profile in one statement.
	SaveCredential(ctx context.Context, deviceID, token, role string, profile domain.Profile) error
	// SaveProfile refreshes only the cached profile fields.
	SaveProfile(ctx context.Context, deviceID string, profile domain.Profile) error
	// ClearCredential wipes token, role and cached profile atomically so a
	// partial logout cannot leave stray keys behind.
	ClearCredential(ctx context.Context, deviceID string) error
}
