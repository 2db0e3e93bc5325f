package cartintent

import (
	"context"
	"time"
)

// Stages of the two-phase remote quantity update (delete then re-add).
const (
	StageDeleting = "deleting"
	StageReadding = "readding"
)

// Intent records an in-flight quantity update against the remote cart so an
// interruption between the delete and the re-add is detectable on next load.
type Intent struct {
	ID           string
	DeviceID     string
	ServerLineID string
	ProductID    string
	Size         string
	Quantity     int
	Stage        string
	CreatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, intent Intent) error
	SetStage(ctx context.Context, id, stage string) error
	Delete(ctx context.Context, id string) error
	// ListByDevice returns leftover intents in creation order.
	ListByDevice(ctx context.Context, deviceID string) ([]Intent, error)
}
