package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/repository/paymentstate"
	selectionrepo "kebuli-storefront/internal/repository/selection"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

// Callback statuses delivered by the external payment widget. They may arrive
// at any later time, duplicated or out of order; the server-issued order id is
// the only correlation handle.
const (
	CallbackSuccess = "success"
	CallbackFailure = "failure"
	CallbackPending = "pending"
	CallbackCancel  = "cancel"
)

// ErrUnknownStatus rejects callbacks with a status outside the widget's set.
var ErrUnknownStatus = errors.New("unknown callback status")

type paymentAPI interface {
	ConfirmPayment(ctx context.Context, token, orderID string) error
	FailPayment(ctx context.Context, token, orderID string) error
	CancelPayment(ctx context.Context, token, orderID string) error
	NotifyPaymentPending(ctx context.Context, token, orderID string) error
}

type cartClearer interface {
	ClearCart(ctx context.Context, sess sessionrepo.Session) error
}

// Service is the payment-callback state machine: pending → paid | failed |
// cancelled, each legal transition mapped to exactly one upstream call.
// Duplicate deliveries find the record already transitioned and are
// acknowledged without re-confirming.
type Service struct {
	payments   paymentstate.Repository
	sessions   sessionrepo.Repository
	selections selectionrepo.Repository
	cart       cartClearer
	api        paymentAPI
	logger     *log.Logger
}

func New(payments paymentstate.Repository, sessions sessionrepo.Repository, selections selectionrepo.Repository, cart cartClearer, api paymentAPI, logger *log.Logger) *Service {
	return &Service{
		payments:   payments,
		sessions:   sessions,
		selections: selections,
		cart:       cart,
		api:        api,
		logger:     logger,
	}
}

// HandleCallback processes one widget callback for the given order id.
// Unknown order ids are rejected with domain.ErrNotFound: there is no local
// correlation table beyond the record created at submission.
func (s *Service) HandleCallback(ctx context.Context, orderID, status string) error {
	rec, err := s.payments.Get(ctx, orderID)
	if err != nil {
		return err
	}

	sess := s.sessionFor(ctx, rec.DeviceID)

	switch status {
	case CallbackSuccess:
		if rec.State != paymentstate.StatePending {
			s.logger.Printf("order %s: duplicate success callback ignored (state %s)", orderID, rec.State)
			return nil
		}
		// Relay before transitioning: a failed confirm must leave the
		// record pending so the widget's retry is not absorbed.
		if err := s.api.ConfirmPayment(ctx, sess.AuthToken, orderID); err != nil {
			return fmt.Errorf("confirm payment for order %s: %w", orderID, err)
		}
		moved, err := s.payments.Transition(ctx, orderID, paymentstate.StatePending, paymentstate.StatePaid)
		if err != nil {
			return err
		}
		if !moved {
			s.logger.Printf("order %s: concurrent callback already settled the record", orderID)
			return nil
		}
		s.clearDevice(ctx, sess)
		return nil

	case CallbackFailure:
		if rec.State != paymentstate.StatePending {
			s.logger.Printf("order %s: duplicate failure callback ignored (state %s)", orderID, rec.State)
			return nil
		}
		if err := s.api.FailPayment(ctx, sess.AuthToken, orderID); err != nil {
			return fmt.Errorf("fail payment for order %s: %w", orderID, err)
		}
		if _, err := s.payments.Transition(ctx, orderID, paymentstate.StatePending, paymentstate.StateFailed); err != nil {
			return err
		}
		return nil

	case CallbackCancel:
		if rec.State != paymentstate.StatePending {
			s.logger.Printf("order %s: duplicate cancel callback ignored (state %s)", orderID, rec.State)
			return nil
		}
		if err := s.api.CancelPayment(ctx, sess.AuthToken, orderID); err != nil {
			return fmt.Errorf("cancel payment for order %s: %w", orderID, err)
		}
		if _, err := s.payments.Transition(ctx, orderID, paymentstate.StatePending, paymentstate.StateCancelled); err != nil {
			return err
		}
		return nil

	case CallbackPending:
		// Not a transition; relay only while the record is still pending.
		if rec.State != paymentstate.StatePending {
			return nil
		}
		if err := s.api.NotifyPaymentPending(ctx, sess.AuthToken, orderID); err != nil {
			s.logger.Printf("order %s: relay pending callback: %v", orderID, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}

// sessionFor loads the originating device's session; a missing session still
// lets terminal callbacks proceed with an anonymous upstream call.
func (s *Service) sessionFor(ctx context.Context, deviceID string) sessionrepo.Session {
	sess, err := s.sessions.Get(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("device %s: load session for callback: %v", deviceID, err)
		}
		return sessionrepo.Session{DeviceID: deviceID}
	}
	return *sess
}

func (s *Service) clearDevice(ctx context.Context, sess sessionrepo.Session) {
	if err := s.cart.ClearCart(ctx, sess); err != nil {
		s.logger.Printf("device %s: clear cart after payment: %v", sess.DeviceID, err)
	}
	if err := s.selections.Clear(ctx, sess.DeviceID); err != nil {
		s.logger.Printf("device %s: clear selection after payment: %v", sess.DeviceID, err)
	}
}
