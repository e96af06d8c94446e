package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/api/middleware"
	"github.com/angelmondragon/pizzaria-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

type stubCartService struct {
	line    *cart.LineDTO
	cart    *cart.CartDTO
	count   *cart.CountDTO
	err     error
	lastAdd cart.AddLineRequest
	lastQty int
}

func (s *stubCartService) AddLine(_ context.Context, _ uuid.UUID, req cart.AddLineRequest) (*cart.LineDTO, error) {
	s.lastAdd = req
	return s.line, s.err
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _, _ uuid.UUID, quantity int) (*cart.LineDTO, error) {
	s.lastQty = quantity
	return s.line, s.err
}

func (s *stubCartService) RemoveLine(_ context.Context, _, _ uuid.UUID) error {
	return s.err
}

func (s *stubCartService) List(_ context.Context, _ uuid.UUID) (*cart.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) Count(_ context.Context, _ uuid.UUID) (*cart.CountDTO, error) {
	return s.count, s.err
}

func (s *stubCartService) Clear(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCartAddSuccess(t *testing.T) {
	svc := &stubCartService{line: &cart.LineDTO{ID: uuid.New(), Name: "Margherita", Quantity: 2}}
	handler := CartAdd(svc, nil)

	body := `{"kind":"catalog-pizza","item_id":"p1","quantity":2}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/cart", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastAdd.ItemID != "p1" {
		t.Fatalf("unexpected item id: %s", svc.lastAdd.ItemID)
	}
}

func TestCartAddRequiresAuth(t *testing.T) {
	handler := CartAdd(&stubCartService{}, nil)

	body := `{"kind":"catalog-pizza","item_id":"p1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartFetchReturnsDerivedTotals(t *testing.T) {
	svc := &stubCartService{cart: &cart.CartDTO{Count: 3, SubtotalCents: 79700, Subtotal: "797"}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cart.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SubtotalCents != 79700 {
		t.Fatalf("unexpected subtotal: %d", envelope.Data.SubtotalCents)
	}
}

func TestCartCount(t *testing.T) {
	svc := &stubCartService{count: &cart.CountDTO{Count: 5}}
	handler := CartCount(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/cart/count", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cart.CountDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 5 {
		t.Fatalf("unexpected count: %d", envelope.Data.Count)
	}
}

func TestCartUpdateQuantityPassesValue(t *testing.T) {
	svc := &stubCartService{line: &cart.LineDTO{ID: uuid.New(), Quantity: 4}}
	handler := CartUpdateQuantity(svc, nil)

	req := authedRequest(http.MethodPut, "/api/cart/"+uuid.NewString(), `{"quantity":4}`)
	req = withURLParam(req, "lineId", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQty != 4 {
		t.Fatalf("expected quantity 4 got %d", svc.lastQty)
	}
}

func TestCartUpdateQuantityRejectsBadID(t *testing.T) {
	handler := CartUpdateQuantity(&stubCartService{}, nil)

	req := authedRequest(http.MethodPut, "/api/cart/nope", `{"quantity":4}`)
	req = withURLParam(req, "lineId", "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	handler := CartRemove(svc, nil)

	lineID := uuid.NewString()
	req := authedRequest(http.MethodDelete, fmt.Sprintf("/api/cart/%s", lineID), "")
	req = withURLParam(req, "lineId", lineID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	handler := CartClear(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
