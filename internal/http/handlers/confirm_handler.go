package handlers

import (
	"github.com/gofiber/fiber/v2"

	"verdora/internal/domain"
	"verdora/internal/handoff"
	applog "verdora/internal/log"
	"verdora/internal/pricing"
)

// ConfirmHandler renders the order confirmation from the one-shot handoff.
// Both snapshots must be present; a partial confirmation is never shown.
type ConfirmHandler struct {
	Handoff *handoff.Store
}

func (h *ConfirmHandler) Show(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return c.Redirect("/")
	}

	var customer domain.CustomerInfo
	var summary domain.OrderSummary
	okCustomer, err := h.Handoff.Take(sid, handoff.KeyCustomer, &customer)
	if err != nil {
		applog.Error(c, "confirm.handoff", err, nil)
		return c.Redirect("/")
	}
	okOrder, err := h.Handoff.Take(sid, handoff.KeyOrder, &summary)
	if err != nil {
		applog.Error(c, "confirm.handoff", err, nil)
		return c.Redirect("/")
	}
	if !okCustomer || !okOrder {
		return c.Redirect("/")
	}

	totals := pricing.Compute(pricing.FromOrderLines(summary.Lines))
	return render(c, "confirmation", fiber.Map{
		"Customer":     customer,
		"Order":        summary,
		"Subtotal":     pricing.Format(totals.Subtotal),
		"Tax":          pricing.Format(totals.Tax),
		"Total":        pricing.Format(totals.Total),
		"PaymentLabel": paymentLabel(customer),
		"Shipping":     customer.DeliveryMode == domain.DeliveryShipping,
	})
}

func paymentLabel(cu domain.CustomerInfo) string {
	if cu.PaymentMethod == domain.PaymentCreditCard && cu.CardNumber != "" {
		return "Carta di Credito (" + cu.CardNumber + ")"
	}
	switch cu.PaymentMethod {
	case domain.PaymentPayPal:
		return "PayPal"
	case domain.PaymentStaysPay:
		return "StaysPay"
	default:
		return cu.PaymentMethod
	}
}
