package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/internal/auth"
	"github.com/angelmondragon/pizzaria-backend/internal/cart"
	"github.com/angelmondragon/pizzaria-backend/internal/catalog"
	"github.com/angelmondragon/pizzaria-backend/internal/orders"
	"github.com/angelmondragon/pizzaria-backend/internal/users"
	pkgauth "github.com/angelmondragon/pizzaria-backend/pkg/auth"
	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (stubAuthService) Me(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(context.Context, auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListPizzas(context.Context) ([]catalog.PizzaDTO, error) {
	return []catalog.PizzaDTO{{ID: "p1", Name: "Margherita"}}, nil
}

func (stubCatalogService) ListIngredients(context.Context) ([]catalog.IngredientDTO, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) AddLine(context.Context, uuid.UUID, cart.AddLineRequest) (*cart.LineDTO, error) {
	return &cart.LineDTO{ID: uuid.New()}, nil
}

func (stubCartService) UpdateQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*cart.LineDTO, error) {
	return &cart.LineDTO{ID: uuid.New()}, nil
}

func (stubCartService) RemoveLine(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubCartService) List(context.Context, uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) Count(context.Context, uuid.UUID) (*cart.CountDTO, error) {
	return &cart.CountDTO{}, nil
}

func (stubCartService) Clear(context.Context, uuid.UUID) error {
	return nil
}

type stubOrderService struct{}

func (stubOrderService) Place(context.Context, uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: uuid.New()}, nil
}

func (stubOrderService) ListForUser(context.Context, uuid.UUID) ([]orders.OrderDTO, error) {
	return nil, nil
}

func (stubOrderService) Get(context.Context, uuid.UUID, uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: uuid.New()}, nil
}

type stubRecommendationService struct{}

func (stubRecommendationService) ForUser(context.Context, uuid.UUID) ([]catalog.PizzaDTO, error) {
	return []catalog.PizzaDTO{{ID: "p1"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		CatalogService:  stubCatalogService{},
		CartService:     stubCartService{},
		OrderService:    stubOrderService{},
		Recommendations: stubRecommendationService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "mario@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, target := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", target, resp.Code)
		}
	}
}

func TestCatalogEndpointsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, target := range []string{"/api/pizzas", "/api/ingredients"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", target, resp.Code)
		}
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())

	checks := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/recommendations"},
	}
	for _, check := range checks {
		req := httptest.NewRequest(check.method, check.target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s got %d", check.method, check.target, resp.Code)
		}
	}
}

func TestProtectedRoutesAcceptValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg)

	checks := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/api/auth/me", http.StatusOK},
		{http.MethodGet, "/api/cart", http.StatusOK},
		{http.MethodGet, "/api/cart/count", http.StatusOK},
		{http.MethodPost, "/api/orders", http.StatusCreated},
		{http.MethodGet, "/api/orders", http.StatusOK},
		{http.MethodGet, "/api/recommendations", http.StatusOK},
	}
	for _, check := range checks {
		req := httptest.NewRequest(check.method, check.target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != check.want {
			t.Fatalf("expected %d for %s %s got %d", check.want, check.method, check.target, resp.Code)
		}
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"mario@example.com","password":"secret1"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
