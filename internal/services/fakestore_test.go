package services_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"verdora/internal/domain"
)

// fakeStore stands in for the resource store: the same REST surface over
// in-memory maps.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]domain.Product
	lines    map[string]domain.CartLine
	orders   map[string]domain.Order
	nextLine int

	srv *httptest.Server
}

func newFakeStore(t *testing.T, products ...domain.Product) *fakeStore {
	t.Helper()
	f := &fakeStore{
		products: map[string]domain.Product{},
		lines:    map[string]domain.CartLine{},
		orders:   map[string]domain.Order{},
	}
	for _, p := range products {
		f.products[p.ID] = p
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /plants", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := make([]domain.Product, 0, len(f.products))
		for _, p := range f.products {
			out = append(out, p)
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("GET /plants/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		p, ok := f.products[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("GET /carrello", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := make([]domain.CartLine, 0, len(f.lines))
		for _, l := range f.lines {
			out = append(out, l)
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /carrello", func(w http.ResponseWriter, r *http.Request) {
		var line domain.CartLine
		if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextLine++
		line.ID = fmt.Sprintf("l-%d", f.nextLine)
		f.lines[line.ID] = line
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(line)
	})
	mux.HandleFunc("PATCH /carrello/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Quantity int `json:"quantita"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		line, ok := f.lines[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		line.Quantity = body.Quantity
		f.lines[line.ID] = line
		json.NewEncoder(w).Encode(line)
	})
	mux.HandleFunc("DELETE /carrello/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.lines, r.PathValue("id"))
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("POST /ordini", func(w http.ResponseWriter, r *http.Request) {
		var o domain.Order
		if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.orders[o.ID] = o
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(o)
	})
	mux.HandleFunc("GET /ordini/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		o, ok := f.orders[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(o)
	})
	mux.HandleFunc("PATCH /ordini/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"stato"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		o, ok := f.orders[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		o.Status = body.Status
		f.orders[o.ID] = o
		json.NewEncoder(w).Encode(o)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStore) URL() string { return f.srv.URL }

func (f *fakeStore) cartLines() []domain.CartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CartLine, 0, len(f.lines))
	for _, l := range f.lines {
		out = append(out, l)
	}
	return out
}

func (f *fakeStore) order(id string) (domain.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	return o, ok
}

func (f *fakeStore) removeProduct(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
}
