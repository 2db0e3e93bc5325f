package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/repository/cartintent"
)

// remoteAPI is the slice of the upstream client the remote store needs.
type remoteAPI interface {
	FetchCart(ctx context.Context, token string) ([]domain.CartLine, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int, size string) error
	DeleteCartItem(ctx context.Context, token, lineID string) error
}

// remoteStore services authenticated sessions: the remote cart is the source
// of truth and every mutation is followed by a full refetch. The add endpoint
// does not return the updated line, so the refetch is required for
// consistency, not an optimization.
type remoteStore struct {
	api      remoteAPI
	intents  cartintent.Repository
	deviceID string
	token    string
	logger   *log.Logger
}

func newRemoteStore(api remoteAPI, intents cartintent.Repository, deviceID, token string, logger *log.Logger) *remoteStore {
	return &remoteStore{
		api:      api,
		intents:  intents,
		deviceID: deviceID,
		token:    token,
		logger:   logger,
	}
}

func (s *remoteStore) Lines(ctx context.Context) ([]domain.CartLine, error) {
	if err := s.resolveIntents(ctx); err != nil {
		return nil, err
	}
	return s.api.FetchCart(ctx, s.token)
}

func (s *remoteStore) Add(ctx context.Context, item domain.MenuItem, quantity int, size string) error {
	return s.api.AddCartItem(ctx, s.token, item.ID, quantity, size)
}

func (s *remoteStore) Remove(ctx context.Context, productID, size string) error {
	line, err := s.find(ctx, productID, size)
	if err != nil {
		return err
	}
	return s.api.DeleteCartItem(ctx, s.token, line.ServerLineID)
}

// SetQuantity is delete-then-re-add because the upstream API has no direct
// quantity update. The two phases are bracketed by a persisted intent so an
// interruption in between is detectable and repairable on the next load.
func (s *remoteStore) SetQuantity(ctx context.Context, productID, size string, quantity int) error {
	line, err := s.find(ctx, productID, size)
	if err != nil {
		return err
	}

	intent := cartintent.Intent{
		ID:           uuid.NewString(),
		DeviceID:     s.deviceID,
		ServerLineID: line.ServerLineID,
		ProductID:    productID,
		Size:         size,
		Quantity:     quantity,
		Stage:        cartintent.StageDeleting,
	}
	if err := s.intents.Create(ctx, intent); err != nil {
		return fmt.Errorf("record update intent: %w", err)
	}

	if err := s.api.DeleteCartItem(ctx, s.token, line.ServerLineID); err != nil {
		// Delete never took effect; the marker has nothing to repair.
		if dropErr := s.intents.Delete(ctx, intent.ID); dropErr != nil {
			s.logger.Printf("drop update intent %s: %v", intent.ID, dropErr)
		}
		return err
	}
	if err := s.intents.SetStage(ctx, intent.ID, cartintent.StageReadding); err != nil {
		s.logger.Printf("stage update intent %s: %v", intent.ID, err)
	}

	if err := s.api.AddCartItem(ctx, s.token, productID, quantity, size); err != nil {
		// The line is now missing remotely. Leave the marker so the next
		// load re-issues the add instead of silently losing the line.
		return err
	}

	if err := s.intents.Delete(ctx, intent.ID); err != nil {
		s.logger.Printf("drop update intent %s: %v", intent.ID, err)
	}
	return nil
}

func (s *remoteStore) Clear(ctx context.Context) error {
	lines, err := s.api.FetchCart(ctx, s.token)
	if err != nil {
		return err
	}
	var firstErr error
	for _, line := range lines {
		if line.ServerLineID == "" {
			continue
		}
		if err := s.api.DeleteCartItem(ctx, s.token, line.ServerLineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			s.logger.Printf("clear cart: delete line %s: %v", line.ServerLineID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *remoteStore) find(ctx context.Context, productID, size string) (*domain.CartLine, error) {
	lines, err := s.api.FetchCart(ctx, s.token)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].Matches(productID, size) {
			return &lines[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// resolveIntents repairs interrupted quantity updates. A marker still in the
// deleting stage means the delete may never have happened: drop it and let the
// refetch reveal the truth. A marker in the readding stage means the remote
// cart lost the line: re-issue the add before serving the cart.
func (s *remoteStore) resolveIntents(ctx context.Context) error {
	intents, err := s.intents.ListByDevice(ctx, s.deviceID)
	if err != nil {
		return err
	}
	for _, intent := range intents {
		if intent.Stage == cartintent.StageReadding {
			if err := s.api.AddCartItem(ctx, s.token, intent.ProductID, intent.Quantity, intent.Size); err != nil {
				s.logger.Printf("repair update intent %s: %v", intent.ID, err)
				continue
			}
		}
		if err := s.intents.Delete(ctx, intent.ID); err != nil {
			s.logger.Printf("drop update intent %s: %v", intent.ID, err)
		}
	}
	return nil
}
