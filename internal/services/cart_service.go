package services

import (
	"context"

	"verdora/internal/domain"
	"verdora/internal/pricing"
	"verdora/internal/resource"
)

// CartService owns the server-side cart collection: one line per distinct
// product. Uniqueness is enforced here, not by the store. There is no local
// cache; every view re-reads the store after a mutation.
type CartService struct {
	Store *resource.Client
}

func NewCartService(store *resource.Client) *CartService {
	return &CartService{Store: store}
}

func (s *CartService) Lines(ctx context.Context) ([]domain.CartLine, error) {
	return s.Store.CartLines(ctx)
}

// Add bumps the quantity of an existing line for the product, or creates a
// new line with quantity 1.
func (s *CartService) Add(ctx context.Context, productID string, price float64, name string) error {
	lines, err := s.Store.CartLines(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if l.ProductID == productID {
			return s.Store.PatchQuantity(ctx, l.ID, l.Quantity+1)
		}
	}
	_, err = s.Store.AddCartLine(ctx, domain.CartLine{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  1,
	})
	return err
}

// UpdateQuantity patches the line; anything below 1 removes it instead.
func (s *CartService) UpdateQuantity(ctx context.Context, lineID string, qty int) error {
	if qty < 1 {
		return s.Remove(ctx, lineID)
	}
	return s.Store.PatchQuantity(ctx, lineID, qty)
}

func (s *CartService) Remove(ctx context.Context, lineID string) error {
	return s.Store.DeleteCartLine(ctx, lineID)
}

// ViewLine is a cart line joined with the current catalog entry.
type ViewLine struct {
	LineID    string
	ProductID string
	Name      string
	Image     string
	Price     float64
	Quantity  int
}

type CartView struct {
	Items  []ViewLine
	Totals pricing.Totals
}

// View joins the cart with the catalog. Name, image and price come from the
// catalog, not from the line snapshot; lines whose product no longer exists
// are dropped silently.
func (s *CartService) View(ctx context.Context) (CartView, error) {
	lines, err := s.Store.CartLines(ctx)
	if err != nil {
		return CartView{}, err
	}
	if len(lines) == 0 {
		return CartView{Items: []ViewLine{}, Totals: pricing.Compute(nil)}, nil
	}

	products, err := s.Store.Products(ctx)
	if err != nil {
		return CartView{}, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]ViewLine, 0, len(lines))
	priced := make([]pricing.Item, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		items = append(items, ViewLine{
			LineID:    l.ID,
			ProductID: l.ProductID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  l.Quantity,
		})
		priced = append(priced, pricing.Item{Price: p.Price, Quantity: l.Quantity})
	}
	return CartView{Items: items, Totals: pricing.Compute(priced)}, nil
}
