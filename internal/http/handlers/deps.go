package handlers

import (
	"verdora/internal/handoff"
	"verdora/internal/resource"
	"verdora/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	ConfirmHandler *ConfirmHandler
}

func NewDeps(store *resource.Client, ho *handoff.Store) *Deps {
	cartSvc := services.NewCartService(store)
	orderSvc := services.NewOrderService(store, ho)

	return &Deps{
		CatalogHandler: &CatalogHandler{Store: store},
		CartHandler:    &CartHandler{Cart: cartSvc, Store: store},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc},
		ConfirmHandler: &ConfirmHandler{Handoff: ho},
	}
}
