package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mantomate/storefront-backend/internal/cart"
	"github.com/mantomate/storefront-backend/internal/catalog"
)

type productsByID map[int64]catalog.Product

func (p productsByID) Get(_ context.Context, id int64) (*catalog.Product, error) {
	product, ok := p[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func newCartService(t *testing.T) cart.Service {
	t.Helper()
	storages := map[string]*cart.MemoryStorage{}
	svc, err := cart.NewService(func(principal string) cart.Storage {
		if _, ok := storages[principal]; !ok {
			storages[principal] = cart.NewMemoryStorage(nil)
		}
		return storages[principal]
	}, productsByID{
		1: {ID: 1, Nombre: "Yerba Suave", Precio: decimal.NewFromInt(1500)},
	}, nil, nil)
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	return svc
}

func TestCartAddUpdateRemove(t *testing.T) {
	svc := newCartService(t)

	resp := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"productId":1}`, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	CartUpdateItem(svc, nil).ServeHTTP(resp, newRequest(http.MethodPatch, "/api/v1/cart/items/1", `{"quantity":3}`, map[string]string{"productId": "1"}))
	var view cart.View
	decodeData(t, resp, &view)
	if view.TotalItems != 3 || view.TotalFormateado != "$ 4.500" {
		t.Fatalf("unexpected cart after update %+v", view)
	}

	resp = httptest.NewRecorder()
	CartUpdateItem(svc, nil).ServeHTTP(resp, newRequest(http.MethodPatch, "/api/v1/cart/items/1", `{"quantity":0}`, map[string]string{"productId": "1"}))
	decodeData(t, resp, &view)
	if view.TotalItems != 3 {
		t.Fatalf("quantity below 1 must be ignored, got %d", view.TotalItems)
	}

	resp = httptest.NewRecorder()
	CartRemoveItem(svc, nil).ServeHTTP(resp, newRequest(http.MethodDelete, "/api/v1/cart/items/1", "", map[string]string{"productId": "1"}))
	decodeData(t, resp, &view)
	if view.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	resp := httptest.NewRecorder()
	CartAddItem(newCartService(t), nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{"productId":99}`, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddRejectsMissingProduct(t *testing.T) {
	resp := httptest.NewRecorder()
	CartAddItem(newCartService(t), nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", `{}`, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
