package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"verdora/internal/checkout"
	"verdora/internal/domain"
	"verdora/internal/handoff"
	"verdora/internal/resource"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderService turns a validated checkout form plus the current cart into a
// persisted order, clears the cart and hands the confirmation data off.
type OrderService struct {
	Store   *resource.Client
	Handoff *handoff.Store
}

func NewOrderService(store *resource.Client, ho *handoff.Store) *OrderService {
	return &OrderService{Store: store, Handoff: ho}
}

type PlaceResult struct {
	OrderID string
	// PaymentDue is set on the credit-card path: the order is persisted as
	// pending and completion is deferred to the payment step.
	PaymentDue bool
}

// Place implements the checkout submission. The catalog price at order time
// is authoritative: each cart line is re-resolved against /plants, and lines
// whose product vanished are dropped. Non-card orders are confirmed
// immediately, the cart is cleared and the confirmation handoff written.
// Card orders stop after the POST; CompletePayment finishes the job.
func (s *OrderService) Place(ctx context.Context, sessionID string, f checkout.Form) (PlaceResult, error) {
	lines, err := s.Store.CartLines(ctx)
	if err != nil {
		return PlaceResult{}, err
	}
	if len(lines) == 0 {
		return PlaceResult{}, ErrEmptyCart
	}

	products, err := s.Store.Products(ctx)
	if err != nil {
		return PlaceResult{}, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		orderLines = append(orderLines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  l.Quantity,
		})
	}
	if len(orderLines) == 0 {
		return PlaceResult{}, ErrEmptyCart
	}

	order := buildOrder(f, orderLines)
	created, err := s.Store.CreateOrder(ctx, order)
	if err != nil {
		return PlaceResult{}, err
	}

	if f.PaymentMethod == domain.PaymentCreditCard {
		// Cart and handoff are left for the payment step.
		return PlaceResult{OrderID: created.ID, PaymentDue: true}, nil
	}

	if err := s.clearCart(ctx, lines); err != nil {
		return PlaceResult{}, err
	}
	if err := s.writeHandoff(sessionID, created); err != nil {
		return PlaceResult{}, err
	}
	return PlaceResult{OrderID: created.ID}, nil
}

// CompletePayment is the payment-simulation step for card orders: confirm
// the order, clear the cart, write the handoff.
func (s *OrderService) CompletePayment(ctx context.Context, sessionID, orderID string) error {
	updated, err := s.Store.PatchOrderStatus(ctx, orderID, domain.StatusConfirmed)
	if err != nil {
		return err
	}
	lines, err := s.Store.CartLines(ctx)
	if err != nil {
		return err
	}
	if err := s.clearCart(ctx, lines); err != nil {
		return err
	}
	return s.writeHandoff(sessionID, updated)
}

func buildOrder(f checkout.Form, lines []domain.OrderLine) domain.Order {
	o := domain.Order{
		ID:            uuid.NewString(),
		Name:          f.Name,
		Surname:       f.Surname,
		Email:         f.Email,
		Phone:         f.Phone,
		DeliveryMode:  f.DeliveryMode,
		PaymentMethod: f.PaymentMethod,
		Status:        domain.StatusConfirmed,
		Lines:         lines,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if f.DeliveryMode == domain.DeliveryShipping {
		o.Street = f.Street
		o.StreetNo = f.StreetNo
		o.PostalCode = f.PostalCode
		o.City = f.City
		o.Province = f.Province
	}
	if f.PaymentMethod == domain.PaymentCreditCard {
		o.CardNumber = checkout.MaskCard(f.CardNumber)
		o.Status = domain.StatusPending
	}
	return o
}

// clearCart issues one DELETE per line in parallel. Best effort, no
// ordering, no rollback. A mid-batch failure leaves a partially emptied cart.
func (s *OrderService) clearCart(ctx context.Context, lines []domain.CartLine) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lines {
		g.Go(func() error {
			return s.Store.DeleteCartLine(gctx, l.ID)
		})
	}
	return g.Wait()
}

func (s *OrderService) writeHandoff(sessionID string, o domain.Order) error {
	customer := domain.CustomerInfo{
		Name:          o.Name,
		Surname:       o.Surname,
		Email:         o.Email,
		Phone:         o.Phone,
		DeliveryMode:  o.DeliveryMode,
		Street:        o.Street,
		StreetNo:      o.StreetNo,
		PostalCode:    o.PostalCode,
		City:          o.City,
		Province:      o.Province,
		PaymentMethod: o.PaymentMethod,
		CardNumber:    o.CardNumber,
	}
	if err := s.Handoff.Put(sessionID, handoff.KeyCustomer, customer); err != nil {
		return err
	}
	summary := domain.OrderSummary{
		OrderNumber: o.ID,
		PlacedAt:    time.Now().UTC().Format(time.RFC3339),
		Lines:       o.Lines,
	}
	return s.Handoff.Put(sessionID, handoff.KeyOrder, summary)
}
