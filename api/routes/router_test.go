package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/internal/auth"
	cartsvc "github.com/craftvine/craftvine-backend/internal/cart"
	categorysvc "github.com/craftvine/craftvine-backend/internal/categories"
	clientsvc "github.com/craftvine/craftvine-backend/internal/clients"
	productsvc "github.com/craftvine/craftvine-backend/internal/products"
	sellersvc "github.com/craftvine/craftvine-backend/internal/sellers"
	pkgauth "github.com/craftvine/craftvine-backend/pkg/auth"
	"github.com/craftvine/craftvine-backend/pkg/config"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

type stubCartService struct{}

func (stubCartService) CreateOrGetCart(context.Context, *uint64) (*models.Cart, error) {
	return &models.Cart{ID: 1, Status: enums.CartStatusActive}, nil
}

func (stubCartService) GetCart(context.Context, uint64, uint64) (*cartsvc.CartView, error) {
	return &cartsvc.CartView{Cart: &models.Cart{ID: 1, Status: enums.CartStatusActive}}, nil
}

func (stubCartService) AddItem(context.Context, uint64, uint64, uint64, decimal.Decimal) (*cartsvc.CartView, error) {
	panic("unimplemented")
}

func (stubCartService) SetItemQuantity(context.Context, uint64, uint64, uint64, decimal.Decimal) (*cartsvc.CartView, error) {
	panic("unimplemented")
}

func (stubCartService) RemoveItem(context.Context, uint64, uint64, uint64) (*cartsvc.CartView, error) {
	panic("unimplemented")
}

func (stubCartService) MergeCarts(context.Context, uint64, uint64, uint64) (*cartsvc.CartView, error) {
	panic("unimplemented")
}

type stubProductService struct{}

func (stubProductService) CreateProduct(context.Context, productsvc.CreateProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubProductService) UpdateProduct(context.Context, uint64, productsvc.UpdateProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubProductService) DeleteProduct(context.Context, uint64) error {
	panic("unimplemented")
}

func (stubProductService) GetProduct(context.Context, uint64) (*models.Product, error) {
	panic("unimplemented")
}

func (stubProductService) ListProducts(context.Context, productsvc.ListFilter, pagination.Params) ([]models.Product, string, error) {
	return nil, "", nil
}

type stubCategoryService struct{}

func (stubCategoryService) CreateCategory(context.Context, categorysvc.CreateCategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) UpdateCategory(context.Context, uint64, categorysvc.UpdateCategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) DeleteCategory(context.Context, uint64) error {
	panic("unimplemented")
}

func (stubCategoryService) GetCategory(context.Context, uint64) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

type stubSellerService struct{}

func (stubSellerService) CreateSeller(context.Context, sellersvc.CreateSellerInput) (*models.Seller, error) {
	panic("unimplemented")
}

func (stubSellerService) UpdateSeller(context.Context, uint64, sellersvc.UpdateSellerInput) (*models.Seller, error) {
	panic("unimplemented")
}

func (stubSellerService) DeleteSeller(context.Context, uint64) error {
	panic("unimplemented")
}

func (stubSellerService) GetSeller(context.Context, uint64) (*models.Seller, error) {
	panic("unimplemented")
}

func (stubSellerService) ListSellers(context.Context, pagination.Params) ([]models.Seller, string, error) {
	return nil, "", nil
}

type stubClientService struct{}

func (stubClientService) UpdateClient(context.Context, uint64, clientsvc.UpdateClientInput) (*models.Client, error) {
	panic("unimplemented")
}

func (stubClientService) DeleteClient(context.Context, uint64) error {
	panic("unimplemented")
}

func (stubClientService) GetClient(context.Context, uint64) (*models.Client, error) {
	panic("unimplemented")
}

func (stubClientService) ListClients(context.Context, pagination.Params) ([]models.Client, string, error) {
	return nil, "", nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "craftvine",
			ExpirationMinutes: 30,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterParams{
		Config:          testConfig(),
		Logger:          logger.New(logger.Options{ServiceName: "router-test"}),
		Database:        stubPinger{},
		Registry:        prometheus.NewRegistry(),
		AuthService:     stubAuthService{},
		CartService:     stubCartService{},
		ProductService:  stubProductService{},
		CategoryService: stubCategoryService{},
		SellerService:   stubSellerService{},
		ClientService:   stubClientService{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterAnonymousCartCreate(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			ID uint64 `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 1 {
		t.Fatalf("unexpected cart id %d", envelope.Data.ID)
	}
}

func TestRouterPublicCatalogList(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterAdminRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/clients", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterAdminRejectsClientRole(t *testing.T) {
	router := newTestRouter(t)
	cfg := testConfig()

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		ClientID: 5,
		Role:     enums.RoleClient,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRouterAdminAllowsAdminRole(t *testing.T) {
	router := newTestRouter(t)
	cfg := testConfig()

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		ClientID: 1,
		Role:     enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
