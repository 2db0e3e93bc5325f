package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/remote"
	"kebuli-storefront/internal/repository/paymentstate"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type memorySelections struct {
	flags map[string]map[string]bool
}

func newMemorySelections() *memorySelections {
	return &memorySelections{flags: make(map[string]map[string]bool)}
}

func (r *memorySelections) device(deviceID string) map[string]bool {
	if r.flags[deviceID] == nil {
		r.flags[deviceID] = make(map[string]bool)
	}
	return r.flags[deviceID]
}

func (r *memorySelections) Get(_ context.Context, deviceID string) (map[string]bool, error) {
	out := make(map[string]bool, len(r.flags[deviceID]))
	for k, v := range r.flags[deviceID] {
		out[k] = v
	}
	return out, nil
}

func (r *memorySelections) Put(_ context.Context, deviceID, lineKey string, selected bool) error {
	r.device(deviceID)[lineKey] = selected
	return nil
}

func (r *memorySelections) SetAll(_ context.Context, deviceID string, lineKeys []string, selected bool) error {
	flags := r.device(deviceID)
	for _, k := range lineKeys {
		flags[k] = selected
	}
	return nil
}

func (r *memorySelections) Sync(_ context.Context, deviceID string, lineKeys []string) error {
	old := r.flags[deviceID]
	next := make(map[string]bool, len(lineKeys))
	for _, k := range lineKeys {
		if v, ok := old[k]; ok {
			next[k] = v
		} else {
			next[k] = true
		}
	}
	r.flags[deviceID] = next
	return nil
}

func (r *memorySelections) Clear(_ context.Context, deviceID string) error {
	delete(r.flags, deviceID)
	return nil
}

type memoryPayments struct {
	recs map[string]paymentstate.Record
}

func newMemoryPayments() *memoryPayments {
	return &memoryPayments{recs: make(map[string]paymentstate.Record)}
}

func (r *memoryPayments) Create(_ context.Context, rec paymentstate.Record) error {
	if _, exists := r.recs[rec.OrderID]; exists {
		return domain.ErrAlreadyExists
	}
	r.recs[rec.OrderID] = rec
	return nil
}

func (r *memoryPayments) Get(_ context.Context, orderID string) (*paymentstate.Record, error) {
	rec, ok := r.recs[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := rec
	return &clone, nil
}

func (r *memoryPayments) Transition(_ context.Context, orderID, from, to string) (bool, error) {
	rec, ok := r.recs[orderID]
	if !ok || rec.State != from {
		return false, nil
	}
	rec.State = to
	r.recs[orderID] = rec
	return true, nil
}

type stubCart struct {
	cart    domain.Cart
	cartErr error
	cleared int
}

func (s *stubCart) Cart(_ context.Context, _ sessionrepo.Session) (domain.Cart, error) {
	if s.cartErr != nil {
		return domain.Cart{}, s.cartErr
	}
	return s.cart, nil
}

func (s *stubCart) ClearCart(_ context.Context, _ sessionrepo.Session) error {
	s.cleared++
	s.cart = domain.Cart{}
	return nil
}

type stubOrderAPI struct {
	order     *domain.Order
	submitErr error
	submitted []remote.OrderInput
	confirmed []string
}

func (s *stubOrderAPI) SubmitOrder(_ context.Context, _ string, in remote.OrderInput) (*domain.Order, error) {
	s.submitted = append(s.submitted, in)
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	clone := *s.order
	return &clone, nil
}

func (s *stubOrderAPI) ConfirmPayment(_ context.Context, _, orderID string) error {
	s.confirmed = append(s.confirmed, orderID)
	return nil
}

const shippingFee = int64(10000)

func newCheckoutFixture(lines []domain.CartLine) (*Service, *memorySelections, *memoryPayments, *stubCart, *stubOrderAPI) {
	selections := newMemorySelections()
	payments := newMemoryPayments()
	cart := &stubCart{cart: domain.Cart{Lines: lines}}
	api := &stubOrderAPI{order: &domain.Order{ID: "ord-1", Status: "placed"}}
	svc := New(selections, payments, cart, api, shippingFee, log.New(io.Discard, "", 0))
	return svc, selections, payments, cart, api
}

func testSession() sessionrepo.Session {
	return sessionrepo.Session{DeviceID: "dev-1", AuthToken: "tok-1", Role: "customer"}
}

func testLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "nasi-kebuli", UnitPriceCents: 20000, Quantity: 2},
		{ProductID: "es-teh", UnitPriceCents: 15000, Quantity: 1},
	}
}

func validInput(method string) SubmitInput {
	return SubmitInput{
		AddressID:     "addr-1",
		PaymentMethod: method,
		FirstName:     "Ana",
		LastName:      "Sari",
		Email:         "ana@example.com",
		Phone:         "0812",
	}
}

func TestSummaryProjectsSelectedTotals(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())
	ctx := context.Background()
	selections.flags["dev-1"] = map[string]bool{"nasi-kebuli": true, "es-teh": false}

	sum, err := svc.Summary(ctx, testSession())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.SelectedSubtotal != 40000 || sum.SelectedCount != 2 {
		t.Fatalf("subtotal=%d count=%d, want 40000/2", sum.SelectedSubtotal, sum.SelectedCount)
	}
	if sum.TotalCents != 50000 {
		t.Fatalf("total=%d, want 50000", sum.TotalCents)
	}
	if !sum.Lines[0].Selected || sum.Lines[1].Selected {
		t.Fatalf("selection flags not carried onto lines: %+v", sum.Lines)
	}
}

func TestSummaryEmptySelectionTotalsZero(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())
	selections.flags["dev-1"] = map[string]bool{"nasi-kebuli": false, "es-teh": false}

	sum, err := svc.Summary(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalCents != 0 {
		t.Fatalf("empty selection must not carry a shipping fee, total=%d", sum.TotalCents)
	}
}

func TestSummarySyncsSelectionWithCart(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())
	// A leftover key for a line no longer in the cart, nothing for the rest.
	selections.flags["dev-1"] = map[string]bool{"gone": false}

	sum, err := svc.Summary(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !sum.Lines[0].Selected || !sum.Lines[1].Selected {
		t.Fatalf("new lines should default to selected: %+v", sum.Lines)
	}
	if _, ok := selections.flags["dev-1"]["gone"]; ok {
		t.Fatalf("stale key survived the sync")
	}
}

func TestToggleLineUnknownKeyIgnored(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())

	if err := svc.ToggleLine(context.Background(), testSession(), "ghost", true); err != nil {
		t.Fatalf("expected logged no-op, got %v", err)
	}
	if _, ok := selections.flags["dev-1"]["ghost"]; ok {
		t.Fatalf("unknown key must not enter the selection")
	}
}

func TestToggleLineFlipsFlag(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())
	ctx := context.Background()

	if err := svc.ToggleLine(ctx, testSession(), "es-teh", false); err != nil {
		t.Fatalf("ToggleLine: %v", err)
	}
	if selections.flags["dev-1"]["es-teh"] {
		t.Fatalf("flag not flipped")
	}
}

func TestSelectAll(t *testing.T) {
	svc, selections, _, _, _ := newCheckoutFixture(testLines())
	ctx := context.Background()

	if err := svc.SelectAll(ctx, testSession(), false); err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	flags := selections.flags["dev-1"]
	if flags["nasi-kebuli"] || flags["es-teh"] {
		t.Fatalf("expected everything deselected: %v", flags)
	}
}

func TestSubmitValidatesBeforeSending(t *testing.T) {
	svc, selections, _, _, api := newCheckoutFixture(testLines())
	selections.flags["dev-1"] = map[string]bool{"nasi-kebuli": false, "es-teh": false}

	_, err := svc.Submit(context.Background(), testSession(), SubmitInput{})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"selection", "addressId", "paymentMethod", "firstName", "lastName", "email", "phone"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Fatalf("missing field %q in %v", field, vErr.Fields)
		}
	}
	if len(api.submitted) != 0 {
		t.Fatalf("nothing may reach the upstream API on validation failure")
	}
}

func TestSubmitSendsOnlySelectedItems(t *testing.T) {
	svc, selections, _, _, api := newCheckoutFixture(testLines())
	selections.flags["dev-1"] = map[string]bool{"nasi-kebuli": true, "es-teh": false}

	if _, err := svc.Submit(context.Background(), testSession(), validInput("card")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	in := api.submitted[0]
	if len(in.Items) != 1 || in.Items[0].ProductID != "nasi-kebuli" {
		t.Fatalf("unexpected items %+v", in.Items)
	}
	if in.ShippingCents != shippingFee {
		t.Fatalf("shipping=%d, want %d", in.ShippingCents, shippingFee)
	}
}

func TestSubmitCashConfirmsAndClears(t *testing.T) {
	svc, selections, payments, cart, api := newCheckoutFixture(testLines())
	ctx := context.Background()

	order, err := svc.Submit(ctx, testSession(), validInput(domain.PaymentCash))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(api.confirmed) != 1 || api.confirmed[0] != order.ID {
		t.Fatalf("cash order not confirmed: %v", api.confirmed)
	}
	if cart.cleared != 1 {
		t.Fatalf("cart not cleared after cash checkout")
	}
	if _, ok := selections.flags["dev-1"]; ok {
		t.Fatalf("selection not cleared after cash checkout")
	}
	if payments.recs[order.ID].State != paymentstate.StatePaid {
		t.Fatalf("payment record state = %q, want paid", payments.recs[order.ID].State)
	}
}

func TestSubmitElectronicLeavesCartForCallback(t *testing.T) {
	svc, _, payments, cart, api := newCheckoutFixture(testLines())
	api.order.PaymentToken = "pay-tok"

	order, err := svc.Submit(context.Background(), testSession(), validInput("card"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if order.PaymentToken != "pay-tok" {
		t.Fatalf("payment token not surfaced: %+v", order)
	}
	if len(api.confirmed) != 0 {
		t.Fatalf("electronic payment must wait for the callback")
	}
	if cart.cleared != 0 {
		t.Fatalf("cart cleared too early")
	}
	if payments.recs[order.ID].State != paymentstate.StatePending {
		t.Fatalf("payment record state = %q, want pending", payments.recs[order.ID].State)
	}
}
