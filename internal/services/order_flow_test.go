package services_test

import (
	"context"
	"errors"
	"testing"

	"verdora/internal/checkout"
	"verdora/internal/domain"
	"verdora/internal/handoff"
	"verdora/internal/resource"
	"verdora/internal/services"
)

func memHandoff(t *testing.T) *handoff.Store {
	t.Helper()
	s, err := handoff.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func paypalForm() checkout.Form {
	return checkout.Form{
		Name:          "Giulia",
		Surname:       "Bianchi",
		Email:         "giulia@example.com",
		Phone:         "333 1234567",
		DeliveryMode:  domain.DeliveryPickup,
		PaymentMethod: domain.PaymentPayPal,
	}
}

func cardForm() checkout.Form {
	f := paypalForm()
	f.PaymentMethod = domain.PaymentCreditCard
	f.CardNumber = "4539148803436467"
	f.Expiry = "12/30"
	f.CVV = "123"
	return f
}

func TestPlaceNonCardConfirmsAndClearsCart(t *testing.T) {
	f := newFakeStore(t, testProducts()...)
	store := resource.New(f.URL())
	ho := memHandoff(t)
	cartSvc := services.NewCartService(store)
	orderSvc := services.NewOrderService(store, ho)
	ctx := context.Background()

	cartSvc.Add(ctx, "p-monstera", 10.00, "Monstera Deliciosa")
	cartSvc.Add(ctx, "p-monstera", 10.00, "Monstera Deliciosa")
	cartSvc.Add(ctx, "p-lavanda", 5.50, "Lavanda")

	res, err := orderSvc.Place(ctx, "sid-1", paypalForm())
	if err != nil {
		t.Fatal(err)
	}
	if res.PaymentDue {
		t.Fatal("paypal order should not defer to a payment step")
	}

	o, ok := f.order(res.OrderID)
	if !ok {
		t.Fatal("order not persisted")
	}
	if o.Status != domain.StatusConfirmed {
		t.Fatalf("want status confirmed, got %s", o.Status)
	}
	if len(o.Lines) != 2 {
		t.Fatalf("want 2 order lines, got %+v", o.Lines)
	}

	if lines := f.cartLines(); len(lines) != 0 {
		t.Fatalf("cart should be empty after placing, got %+v", lines)
	}

	var cu domain.CustomerInfo
	if ok, err := ho.Take("sid-1", handoff.KeyCustomer, &cu); err != nil || !ok {
		t.Fatalf("customer handoff missing: ok=%v err=%v", ok, err)
	}
	if cu.Name != "Giulia" || cu.PaymentMethod != domain.PaymentPayPal {
		t.Fatalf("bad customer snapshot: %+v", cu)
	}
	var sum domain.OrderSummary
	if ok, err := ho.Take("sid-1", handoff.KeyOrder, &sum); err != nil || !ok {
		t.Fatalf("order handoff missing: ok=%v err=%v", ok, err)
	}
	if sum.OrderNumber != res.OrderID || len(sum.Lines) != 2 {
		t.Fatalf("bad order snapshot: %+v", sum)
	}
}

func TestPlaceCardDefersCompletion(t *testing.T) {
	f := newFakeStore(t, testProducts()...)
	store := resource.New(f.URL())
	ho := memHandoff(t)
	cartSvc := services.NewCartService(store)
	orderSvc := services.NewOrderService(store, ho)
	ctx := context.Background()

	cartSvc.Add(ctx, "p-monstera", 10.00, "Monstera Deliciosa")

	res, err := orderSvc.Place(ctx, "sid-1", cardForm())
	if err != nil {
		t.Fatal(err)
	}
	if !res.PaymentDue {
		t.Fatal("card order must defer to the payment step")
	}

	o, _ := f.order(res.OrderID)
	if o.Status != domain.StatusPending {
		t.Fatalf("want pending before payment, got %s", o.Status)
	}
	if o.CardNumber != "****-****-****-6467" {
		t.Fatalf("card number must be masked, got %q", o.CardNumber)
	}
	if lines := f.cartLines(); len(lines) != 1 {
		t.Fatalf("cart must survive until payment completes, got %+v", lines)
	}
	var cu domain.CustomerInfo
	if ok, _ := ho.Take("sid-1", handoff.KeyCustomer, &cu); ok {
		t.Fatal("handoff must not be written before payment completes")
	}

	if err := orderSvc.CompletePayment(ctx, "sid-1", res.OrderID); err != nil {
		t.Fatal(err)
	}
	o, _ = f.order(res.OrderID)
	if o.Status != domain.StatusConfirmed {
		t.Fatalf("want confirmed after payment, got %s", o.Status)
	}
	if lines := f.cartLines(); len(lines) != 0 {
		t.Fatalf("cart should be empty after payment, got %+v", lines)
	}
	if ok, _ := ho.Take("sid-1", handoff.KeyCustomer, &cu); !ok {
		t.Fatal("customer handoff missing after payment")
	}
	if cu.CardNumber != "****-****-****-6467" {
		t.Fatalf("handoff should carry the masked card, got %q", cu.CardNumber)
	}
}

func TestPlaceEmptyCart(t *testing.T) {
	f := newFakeStore(t, testProducts()...)
	orderSvc := services.NewOrderService(resource.New(f.URL()), memHandoff(t))

	_, err := orderSvc.Place(context.Background(), "sid-1", paypalForm())
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

// The catalog price at order time wins over the cart snapshot.
func TestPlaceUsesCurrentCatalogPrice(t *testing.T) {
	f := newFakeStore(t, testProducts()...)
	store := resource.New(f.URL())
	cartSvc := services.NewCartService(store)
	orderSvc := services.NewOrderService(store, memHandoff(t))
	ctx := context.Background()

	// snapshot a stale price into the cart line
	cartSvc.Add(ctx, "p-monstera", 7.77, "Monstera Deliciosa")

	res, err := orderSvc.Place(ctx, "sid-1", paypalForm())
	if err != nil {
		t.Fatal(err)
	}
	o, _ := f.order(res.OrderID)
	if len(o.Lines) != 1 || o.Lines[0].Price != 10.00 {
		t.Fatalf("want catalog price 10.00 on the order, got %+v", o.Lines)
	}
}
