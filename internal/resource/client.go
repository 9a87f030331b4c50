// Package resource is the REST client for the resource store that owns
// products, cart lines and orders. Every failure collapses into
// ErrUnavailable; callers surface it and never retry.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"verdora/internal/domain"
)

// ErrUnavailable marks a transport failure or a non-2xx response.
var ErrUnavailable = errors.New("resource store unavailable")

type Client struct {
	base string
	hc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{base: baseURL, hc: &http.Client{}}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s %s: decode: %v", ErrUnavailable, method, path, err)
		}
	}
	return nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, http.MethodGet, "/plants", nil, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, "/plants/"+id, nil, &out)
	return out, err
}

func (c *Client) CartLines(ctx context.Context) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := c.do(ctx, http.MethodGet, "/carrello", nil, &out)
	return out, err
}

func (c *Client) AddCartLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	var out domain.CartLine
	err := c.do(ctx, http.MethodPost, "/carrello", line, &out)
	return out, err
}

func (c *Client) PatchQuantity(ctx context.Context, lineID string, qty int) error {
	return c.do(ctx, http.MethodPatch, "/carrello/"+lineID, map[string]int{"quantita": qty}, nil)
}

func (c *Client) DeleteCartLine(ctx context.Context, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/carrello/"+lineID, nil, nil)
}

func (c *Client) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPost, "/ordini", o, &out)
	return out, err
}

func (c *Client) Order(ctx context.Context, id string) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodGet, "/ordini/"+id, nil, &out)
	return out, err
}

func (c *Client) PatchOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPatch, "/ordini/"+id, map[string]string{"stato": status}, &out)
	return out, err
}
