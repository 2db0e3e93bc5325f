package cart

import (
	"context"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/repository/guestcart"
)

// localStore services guests: the durable guest record is the source of truth
// and every mutation is persisted immediately.
type localStore struct {
	repo     guestcart.Repository
	deviceID string
}

func newLocalStore(repo guestcart.Repository, deviceID string) *localStore {
	return &localStore{repo: repo, deviceID: deviceID}
}

func (s *localStore) Lines(ctx context.Context) ([]domain.CartLine, error) {
	stored, err := s.repo.List(ctx, s.deviceID)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(stored))
	for _, l := range stored {
		lines = append(lines, domain.CartLine{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			ImageURL:       l.ImageURL,
			Size:           l.Size,
			Quantity:       l.Quantity,
		})
	}
	return lines, nil
}

func (s *localStore) Add(ctx context.Context, item domain.MenuItem, quantity int, size string) error {
	return s.repo.Add(ctx, guestcart.Line{
		DeviceID:       s.deviceID,
		ProductID:      item.ID,
		Size:           size,
		Name:           item.Name,
		UnitPriceCents: item.PriceCents,
		ImageURL:       item.ImageURL,
		Quantity:       quantity,
	})
}

func (s *localStore) Remove(ctx context.Context, productID, size string) error {
	return s.repo.Delete(ctx, s.deviceID, productID, size)
}

func (s *localStore) SetQuantity(ctx context.Context, productID, size string, quantity int) error {
	return s.repo.SetQuantity(ctx, s.deviceID, productID, size, quantity)
}

func (s *localStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx, s.deviceID)
}
