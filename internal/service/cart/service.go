package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/repository/cartintent"
	"kebuli-storefront/internal/repository/guestcart"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type catalogAPI interface {
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
}

type sessionWriter interface {
	ClearCredential(ctx context.Context, deviceID string) error
}

// Service is the cart reconciler: one uniform mutation API regardless of
// authentication state. The backing store is chosen once per call from the
// session, not inside every operation.
type Service struct {
	guest    guestcart.Repository
	intents  cartintent.Repository
	sessions sessionWriter
	api      remoteAPI
	catalog  catalogAPI
	logger   *log.Logger

	mu    sync.Mutex
	locks map[string]*deviceLock
}

// deviceLock is a reference-counted entry in the per-device lock table. The
// count tracks holders and waiters so the entry can be dropped once idle.
type deviceLock struct {
	mu   sync.Mutex
	refs int
}

func New(guest guestcart.Repository, intents cartintent.Repository, sessions sessionWriter, api remoteAPI, catalog catalogAPI, logger *log.Logger) *Service {
	return &Service{
		guest:    guest,
		intents:  intents,
		sessions: sessions,
		api:      api,
		catalog:  catalog,
		logger:   logger,
		locks:    make(map[string]*deviceLock),
	}
}

// storeFor selects the backing store for the session. This is the single
// guest-vs-remote decision point.
func (s *Service) storeFor(sess sessionrepo.Session) Store {
	if sess.Authenticated() {
		return newRemoteStore(s.api, s.intents, sess.DeviceID, sess.AuthToken, s.logger)
	}
	return newLocalStore(s.guest, sess.DeviceID)
}

// lockDevice serializes mutations per device so a rapid double-invocation
// cannot interleave the two-phase remote update. The returned func releases
// the lock and evicts the table entry once no other caller holds or awaits
// it, keeping the table bounded by concurrent devices rather than all devices
// ever seen.
func (s *Service) lockDevice(deviceID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[deviceID]
	if !ok {
		lock = &deviceLock{}
		s.locks[deviceID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, deviceID)
		}
		s.mu.Unlock()
	}
}

// run executes op against the session's store. A remote 401 discards the
// stored credential and retries the operation in guest mode exactly once.
func (s *Service) run(ctx context.Context, sess sessionrepo.Session, op func(Store) error) error {
	err := op(s.storeFor(sess))
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) || !sess.Authenticated() {
		return err
	}

	s.logger.Printf("device %s: credential rejected upstream, falling back to guest cart", sess.DeviceID)
	if clearErr := s.sessions.ClearCredential(ctx, sess.DeviceID); clearErr != nil {
		s.logger.Printf("device %s: clear credential: %v", sess.DeviceID, clearErr)
	}
	sess.AuthToken = ""
	sess.Role = ""
	return op(s.storeFor(sess))
}

// Cart returns the current cart view for the session.
func (s *Service) Cart(ctx context.Context, sess sessionrepo.Session) (domain.Cart, error) {
	var lines []domain.CartLine
	err := s.run(ctx, sess, func(store Store) error {
		var innerErr error
		lines, innerErr = store.Lines(ctx)
		return innerErr
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{Lines: lines}, nil
}

// AddLine merges (product, size) into the session's cart. Calling it twice
// with quantity 1 is equivalent to calling it once with quantity 2.
func (s *Service) AddLine(ctx context.Context, sess sessionrepo.Session, productID string, quantity int, size string) error {
	if quantity < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}
	item, err := s.catalog.GetMenuItem(ctx, productID)
	if err != nil {
		return err
	}

	unlock := s.lockDevice(sess.DeviceID)
	defer unlock()

	return s.run(ctx, sess, func(store Store) error {
		return store.Add(ctx, *item, quantity, size)
	})
}

// RemoveLine drops the matching line. Removing a line that does not exist is
// a logged no-op, not an error; a second removal therefore cannot fail.
func (s *Service) RemoveLine(ctx context.Context, sess sessionrepo.Session, productID, size string) error {
	unlock := s.lockDevice(sess.DeviceID)
	defer unlock()

	err := s.run(ctx, sess, func(store Store) error {
		return store.Remove(ctx, productID, size)
	})
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("device %s: remove %s/%s: no matching line", sess.DeviceID, productID, size)
		return nil
	}
	return err
}

// SetQuantity replaces the matching line's quantity. Quantities below 1 are
// rejected as a strict no-op: the cart is left untouched.
func (s *Service) SetQuantity(ctx context.Context, sess sessionrepo.Session, productID, size string, quantity int) error {
	if quantity < 1 {
		s.logger.Printf("device %s: set quantity %s/%s to %d rejected", sess.DeviceID, productID, size, quantity)
		return nil
	}

	unlock := s.lockDevice(sess.DeviceID)
	defer unlock()

	err := s.run(ctx, sess, func(store Store) error {
		return store.SetQuantity(ctx, productID, size, quantity)
	})
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("device %s: set quantity %s/%s: no matching line", sess.DeviceID, productID, size)
		return nil
	}
	return err
}

// ClearCart empties the session's cart. Clearing an empty cart is a no-op.
func (s *Service) ClearCart(ctx context.Context, sess sessionrepo.Session) error {
	unlock := s.lockDevice(sess.DeviceID)
	defer unlock()

	return s.run(ctx, sess, func(store Store) error {
		return store.Clear(ctx)
	})
}

// MergeGuestCart migrates the device's guest lines into the now-available
// remote cart after login. Each line's add is attempted independently; a
// failed line is retained in the guest record for a later retry while
// successfully migrated lines are erased.
func (s *Service) MergeGuestCart(ctx context.Context, sess sessionrepo.Session) error {
	if !sess.Authenticated() {
		return nil
	}

	unlock := s.lockDevice(sess.DeviceID)
	defer unlock()

	stored, err := s.guest.List(ctx, sess.DeviceID)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	for _, line := range stored {
		if err := s.api.AddCartItem(ctx, sess.AuthToken, line.ProductID, line.Quantity, line.Size); err != nil {
			s.logger.Printf("device %s: migrate line %s/%s: %v", sess.DeviceID, line.ProductID, line.Size, err)
			continue
		}
		if err := s.guest.Delete(ctx, sess.DeviceID, line.ProductID, line.Size); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("device %s: erase migrated line %s/%s: %v", sess.DeviceID, line.ProductID, line.Size, err)
		}
	}

	// Single refetch so the remote truth is observed once after the batch.
	if _, err := s.api.FetchCart(ctx, sess.AuthToken); err != nil {
		s.logger.Printf("device %s: refetch after migration: %v", sess.DeviceID, err)
	}
	return nil
}
