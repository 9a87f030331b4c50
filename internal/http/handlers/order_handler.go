package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"verdora/internal/checkout"
	applog "verdora/internal/log"
	"verdora/internal/services"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	ensureSID(c)
	cv, err := h.Cart.View(c.UserContext())
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Impossibile caricare il carrello"})
	}
	data := cartData(cv, "")
	data["Form"] = checkout.Form{}
	data["Errors"] = map[string]string{}
	return render(c, "checkout", data)
}

// Place validates the submitted form and runs the order flow. Validation
// failures re-render the form with every field error at once; processing
// failures keep the user on the checkout page with a generic alert.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	form := formFromCtx(c)
	fieldErrs, ok := checkout.Validate(form)
	if !ok {
		applog.Security(c, "checkout.validation.fail", map[string]any{"fields": len(fieldErrs)})
		return h.rerender(c, form, fieldErrs, "")
	}

	res, err := h.Order.Place(c.UserContext(), sid, form)
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Redirect("/cart")
	}
	if err != nil {
		applog.Error(c, "order.place", err, nil)
		return h.rerender(c, form, nil, "Si è verificato un problema durante il checkout. Riprova.")
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id":    res.OrderID,
		"payment_due": res.PaymentDue,
	})
	if res.PaymentDue {
		return c.Redirect("/payment/" + res.OrderID)
	}
	return c.Redirect("/confirmation")
}

// Payment renders the simulation page for a pending card order.
func (h *OrderHandler) Payment(c *fiber.Ctx) error {
	ensureSID(c)
	return render(c, "payment", fiber.Map{"OrderID": c.Params("id")})
}

// CompletePayment is posted by the simulation page: it confirms the order,
// clears the cart and moves on to the confirmation.
func (h *OrderHandler) CompletePayment(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orderID := c.Params("id")
	if err := h.Order.CompletePayment(c.UserContext(), sid, orderID); err != nil {
		applog.Error(c, "payment.complete", err, map[string]any{"order_id": orderID})
		return c.Redirect("/cart")
	}
	applog.Audit(c, "payment.complete", map[string]any{"order_id": orderID})
	return c.Redirect("/confirmation")
}

func (h *OrderHandler) rerender(c *fiber.Ctx, form checkout.Form, fieldErrs map[string]string, alert string) error {
	cv, err := h.Cart.View(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Impossibile caricare il carrello"})
	}
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	data := cartData(cv, alert)
	data["Form"] = form
	data["Errors"] = fieldErrs
	return render(c, "checkout", data)
}

func formFromCtx(c *fiber.Ctx) checkout.Form {
	return checkout.Form{
		Name:          c.FormValue("nome"),
		Surname:       c.FormValue("cognome"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("telefono"),
		DeliveryMode:  c.FormValue("modalitaConsegna"),
		Street:        c.FormValue("via"),
		StreetNo:      c.FormValue("civico"),
		PostalCode:    c.FormValue("cap"),
		City:          c.FormValue("citta"),
		Province:      c.FormValue("provincia"),
		PaymentMethod: c.FormValue("metodoPagamento"),
		CardNumber:    c.FormValue("numeroCarta"),
		Expiry:        c.FormValue("scadenza"),
		CVV:           c.FormValue("cvv"),
	}
}
