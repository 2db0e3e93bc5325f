package checkout

import (
	"context"
	"log"
	"strings"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/remote"
	"kebuli-storefront/internal/repository/paymentstate"
	selectionrepo "kebuli-storefront/internal/repository/selection"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type cartReader interface {
	Cart(ctx context.Context, sess sessionrepo.Session) (domain.Cart, error)
	ClearCart(ctx context.Context, sess sessionrepo.Session) error
}

type orderAPI interface {
	SubmitOrder(ctx context.Context, token string, in remote.OrderInput) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, token, orderID string) error
}

// Service projects checkout totals from the cart plus the persisted selection
// and hands finalized orders to the upstream API.
type Service struct {
	selections       selectionrepo.Repository
	payments         paymentstate.Repository
	cart             cartReader
	api              orderAPI
	shippingFeeCents int64
	logger           *log.Logger
}

func New(selections selectionrepo.Repository, payments paymentstate.Repository, cart cartReader, api orderAPI, shippingFeeCents int64, logger *log.Logger) *Service {
	return &Service{
		selections:       selections,
		payments:         payments,
		cart:             cart,
		api:              api,
		shippingFeeCents: shippingFeeCents,
		logger:           logger,
	}
}

// Line is a cart line annotated with its selection flag.
type Line struct {
	domain.CartLine
	Selected bool `json:"selected"`
}

// Summary is the checkout-ready projection of the session's cart.
type Summary struct {
	Lines            []Line `json:"lines"`
	SelectedSubtotal int64  `json:"selectedSubtotalCents"`
	SelectedCount    int    `json:"selectedCount"`
	ShippingCents    int64  `json:"shippingCents"`
	TotalCents       int64  `json:"totalCents"`
}

// synced reconciles the stored selection against the current cart: stale keys
// are pruned, new lines default to selected.
func (s *Service) synced(ctx context.Context, sess sessionrepo.Session) (domain.Cart, map[string]bool, error) {
	cart, err := s.cart.Cart(ctx, sess)
	if err != nil {
		return domain.Cart{}, nil, err
	}
	keys := make([]string, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		keys = append(keys, l.Key())
	}
	if err := s.selections.Sync(ctx, sess.DeviceID, keys); err != nil {
		return domain.Cart{}, nil, err
	}
	flags, err := s.selections.Get(ctx, sess.DeviceID)
	if err != nil {
		return domain.Cart{}, nil, err
	}
	return cart, flags, nil
}

// Summary computes the projection without mutating cart or selection beyond
// the pruning sync.
func (s *Service) Summary(ctx context.Context, sess sessionrepo.Session) (*Summary, error) {
	cart, flags, err := s.synced(ctx, sess)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, Line{CartLine: l, Selected: flags[l.Key()]})
	}
	subtotal := SelectedSubtotal(cart.Lines, flags)
	count := SelectedCount(cart.Lines, flags)
	return &Summary{
		Lines:            lines,
		SelectedSubtotal: subtotal,
		SelectedCount:    count,
		ShippingCents:    s.shippingFeeCents,
		TotalCents:       Total(subtotal, count, s.shippingFeeCents),
	}, nil
}

// ToggleLine flips one line's selection flag. Unknown keys are ignored so the
// selection can never reference a line that is not in the cart.
func (s *Service) ToggleLine(ctx context.Context, sess sessionrepo.Session, lineKey string, selected bool) error {
	cart, _, err := s.synced(ctx, sess)
	if err != nil {
		return err
	}
	for _, l := range cart.Lines {
		if l.Key() == lineKey {
			return s.selections.Put(ctx, sess.DeviceID, lineKey, selected)
		}
	}
	s.logger.Printf("device %s: toggle %s: no matching line", sess.DeviceID, lineKey)
	return nil
}

// SelectAll sets every current line's flag to the same value.
func (s *Service) SelectAll(ctx context.Context, sess sessionrepo.Session, selected bool) error {
	cart, _, err := s.synced(ctx, sess)
	if err != nil {
		return err
	}
	if len(cart.Lines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		keys = append(keys, l.Key())
	}
	return s.selections.SetAll(ctx, sess.DeviceID, keys, selected)
}

// SubmitInput carries the checkout form: delivery, payment and contact.
type SubmitInput struct {
	AddressID     string `json:"addressId"`
	PaymentMethod string `json:"paymentMethod"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

func (in SubmitInput) validate(selectedCount int) *domain.ValidationError {
	fields := make(map[string]string)
	if selectedCount == 0 {
		fields["selection"] = "select at least one item"
	}
	if strings.TrimSpace(in.AddressID) == "" {
		fields["addressId"] = "delivery address required"
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		fields["paymentMethod"] = "payment method required"
	}
	if strings.TrimSpace(in.FirstName) == "" {
		fields["firstName"] = "first name required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		fields["lastName"] = "last name required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "email required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "phone required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// Submit validates the preconditions locally, submits the selected subset and
// reacts to the payment method: cash is confirmed immediately and the cart
// cleared; electronic methods return the server-issued payment token for the
// widget, leaving the cart to be cleared by the success callback.
func (s *Service) Submit(ctx context.Context, sess sessionrepo.Session, in SubmitInput) (*domain.Order, error) {
	cart, flags, err := s.synced(ctx, sess)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if !flags[l.Key()] {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Size:           l.Size,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}

	if vErr := in.validate(len(items)); vErr != nil {
		return nil, vErr
	}

	order, err := s.api.SubmitOrder(ctx, sess.AuthToken, remote.OrderInput{
		AddressID:     in.AddressID,
		PaymentMethod: in.PaymentMethod,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		ShippingCents: s.shippingFeeCents,
		Items:         items,
	})
	if err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, paymentstate.Record{
		OrderID:  order.ID,
		DeviceID: sess.DeviceID,
		State:    paymentstate.StatePending,
	}); err != nil {
		s.logger.Printf("device %s: track payment for order %s: %v", sess.DeviceID, order.ID, err)
	}

	if in.PaymentMethod == domain.PaymentCash {
		if err := s.api.ConfirmPayment(ctx, sess.AuthToken, order.ID); err != nil {
			return nil, err
		}
		if _, err := s.payments.Transition(ctx, order.ID, paymentstate.StatePending, paymentstate.StatePaid); err != nil {
			s.logger.Printf("device %s: record cash payment for order %s: %v", sess.DeviceID, order.ID, err)
		}
		s.clearAfterCheckout(ctx, sess)
	}

	return order, nil
}

func (s *Service) clearAfterCheckout(ctx context.Context, sess sessionrepo.Session) {
	if err := s.cart.ClearCart(ctx, sess); err != nil {
		s.logger.Printf("device %s: clear cart after checkout: %v", sess.DeviceID, err)
	}
	if err := s.selections.Clear(ctx, sess.DeviceID); err != nil {
		s.logger.Printf("device %s: clear selection after checkout: %v", sess.DeviceID, err)
	}
}
