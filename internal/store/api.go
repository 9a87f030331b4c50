// Package store implements the resource store consumed by the shop: a plain
// JSON API over sqlite holding plants, cart lines and orders as rows.
package store

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"verdora/internal/domain"
)

type API struct {
	Plants *PlantRepo
	Cart   *CartRepo
	Orders *OrderRepo
}

func NewAPI(db *sqlx.DB) *API {
	return &API{
		Plants: NewPlantRepo(db),
		Cart:   NewCartRepo(db),
		Orders: NewOrderRepo(db),
	}
}

func (a *API) Register(app *fiber.App) {
	app.Get("/plants", a.ListPlants)
	app.Get("/plants/:id", a.GetPlant)

	app.Get("/carrello", a.ListCart)
	app.Post("/carrello", a.AddCartLine)
	app.Patch("/carrello/:id", a.PatchCartLine)
	app.Delete("/carrello/:id", a.DeleteCartLine)

	app.Post("/ordini", a.CreateOrder)
	app.Get("/ordini/:id", a.GetOrder)
	app.Patch("/ordini/:id", a.PatchOrder)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}

func (a *API) ListPlants(c *fiber.Ctx) error {
	plants, err := a.Plants.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(plants)
}

func (a *API) GetPlant(c *fiber.Ctx) error {
	p, err := a.Plants.Get(c.Params("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(p)
}

func (a *API) ListCart(c *fiber.Ctx) error {
	lines, err := a.Cart.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(lines)
}

func (a *API) AddCartLine(c *fiber.Ctx) error {
	var line domain.CartLine
	if err := c.BodyParser(&line); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if line.ProductID == "" || line.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prodottoId and quantita >= 1 required"})
	}
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	if err := a.Cart.Insert(line); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

func (a *API) PatchCartLine(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantita"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if body.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantita >= 1 required"})
	}
	id := c.Params("id")
	if _, err := a.Cart.Get(id); errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	if err := a.Cart.UpdateQuantity(id, body.Quantity); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	line, err := a.Cart.Get(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(line)
}

func (a *API) DeleteCartLine(c *fiber.Ctx) error {
	if err := a.Cart.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(fiber.Map{})
}

func (a *API) CreateOrder(c *fiber.Ctx) error {
	var o domain.Order
	if err := c.BodyParser(&o); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if len(o.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prodotti required"})
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if err := a.Orders.Create(o); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	created, err := a.Orders.Get(o.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (a *API) GetOrder(c *fiber.Ctx) error {
	o, err := a.Orders.Get(c.Params("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(o)
}

func (a *API) PatchOrder(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"stato"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if body.Status != domain.StatusPending && body.Status != domain.StatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid stato"})
	}
	id := c.Params("id")
	if _, err := a.Orders.Get(id); errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	if err := a.Orders.UpdateStatus(id, body.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	o, err := a.Orders.Get(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.JSON(o)
}
