package selection

import "context"

type Repository interface {
	// Get returns the selected flag per line key for a device.
	Get(ctx context.Context, deviceID string) (map[string]bool, error)
	// Put records the flag for one line key.
	Put(ctx context.Context, deviceID, lineKey string, selected bool) error
	// SetAll records the same flag for every given key.
	SetAll(ctx context.Context, deviceID string, lineKeys []string, selected bool) error
	// Sync prunes keys no longer in the cart and inserts new keys as selected,
	// preserving the stored flag for keys that survive.
	Sync(ctx context.Context, deviceID string, lineKeys []string) error
	// Clear drops the device's whole selection.
	Clear(ctx context.Context, deviceID string) error
}
