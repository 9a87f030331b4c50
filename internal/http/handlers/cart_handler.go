package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "verdora/internal/log"
	"verdora/internal/pricing"
	"verdora/internal/resource"
	"verdora/internal/services"
)

type CartHandler struct {
	Cart  *services.CartService
	Store *resource.Client
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	ensureSID(c)
	cv, err := h.Cart.View(c.UserContext())
	if err != nil {
		applog.Error(c, "cart.load", err, nil)
		// No retry: the cart page renders its unavailable state.
		return render(c, "cart", fiber.Map{"Unavailable": true})
	}
	return render(c, "cart", cartData(cv, ""))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	ensureSID(c)
	productID := strings.TrimSpace(c.FormValue("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	p, err := h.Store.Product(c.UserContext(), productID)
	if err != nil || p.ID == "" {
		applog.Security(c, "cart.add.unknown_product", map[string]any{"product_id": productID})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Questo articolo non è più disponibile"})
	}
	if err := h.Cart.Add(c.UserContext(), p.ID, p.Price, p.Name); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product_id": productID})
		return render(c, "cart", fiber.Map{"Unavailable": true})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	ensureSID(c)
	lineID := strings.TrimSpace(c.FormValue("lineId"))
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(c.FormValue("quantity")))
	if err != nil {
		qty = 1
	}
	if err := h.Cart.UpdateQuantity(c.UserContext(), lineID, qty); err != nil {
		applog.Error(c, "cart.update", err, map[string]any{"line_id": lineID})
		return render(c, "cart", fiber.Map{"Unavailable": true})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	ensureSID(c)
	lineID := strings.TrimSpace(c.FormValue("lineId"))
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	if err := h.Cart.Remove(c.UserContext(), lineID); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"line_id": lineID})
		return render(c, "cart", fiber.Map{"Unavailable": true})
	}
	return c.Redirect("/cart")
}

func cartData(cv services.CartView, alert string) fiber.Map {
	data := fiber.Map{
		"Cart":     cv,
		"Subtotal": pricing.Format(cv.Totals.Subtotal),
		"Tax":      pricing.Format(cv.Totals.Tax),
		"Total":    pricing.Format(cv.Totals.Total),
	}
	if alert != "" {
		data["Alert"] = alert
	}
	return data
}
