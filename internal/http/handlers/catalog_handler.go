package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "verdora/internal/log"
	"verdora/internal/resource"
)

type CatalogHandler struct {
	Store *resource.Client
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	products, err := h.Store.Products(c.UserContext())
	if err != nil {
		applog.Error(c, "catalog.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Catalogo non disponibile. Riprova più tardi."})
	}
	return render(c, "home", fiber.Map{"Products": products})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	p, err := h.Store.Product(c.UserContext(), c.Params("id"))
	if err != nil || p.ID == "" {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Questo articolo non è più disponibile"})
	}
	return render(c, "product", fiber.Map{"P": p})
}
