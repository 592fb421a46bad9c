package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"freshbasket/internal/domain"
	zonerepo "freshbasket/internal/repository/zone"
	"freshbasket/internal/service/shoprouter"
	zonesvc "freshbasket/internal/service/zone"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubProducts struct {
	products []domain.Product
	err      error
}

func (s *stubProducts) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubShops struct {
	shops []domain.Shop
}

func (s *stubShops) ListActive(_ context.Context) ([]domain.Shop, error) {
	return s.shops, nil
}

func (s *stubShops) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	for i := range s.shops {
		if s.shops[i].ID == id {
			return &s.shops[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubZoneRepo struct {
	zones map[string]domain.DeliveryZone
}

func (s *stubZoneRepo) Create(_ context.Context, _ zonerepo.CreateZoneInput) (*domain.DeliveryZone, error) {
	return nil, domain.ErrNotFound
}

func (s *stubZoneRepo) Update(_ context.Context, _ string, _ zonerepo.UpdateZoneInput) (*domain.DeliveryZone, error) {
	return nil, domain.ErrNotFound
}

func (s *stubZoneRepo) GetByID(_ context.Context, _ string) (*domain.DeliveryZone, error) {
	return nil, domain.ErrNotFound
}

func (s *stubZoneRepo) GetActiveApprovedByPincode(_ context.Context, pincode string) (*domain.DeliveryZone, error) {
	z, ok := s.zones[pincode]
	if !ok || !z.Active || !z.Approved {
		return nil, domain.ErrNotFound
	}
	return &z, nil
}

func (s *stubZoneRepo) List(_ context.Context) ([]domain.DeliveryZone, error) {
	out := make([]domain.DeliveryZone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z)
	}
	return out, nil
}

func (s *stubZoneRepo) Approve(_ context.Context, _ string) (*domain.DeliveryZone, error) {
	return nil, domain.ErrNotFound
}

type stubUsers struct {
	users map[string]domain.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func testDeps() Deps {
	shops := &stubShops{shops: []domain.Shop{
		{ID: "shop-1", Name: "Central", Lat: 12.97, Lng: 77.59, RadiusKM: 10, Active: true},
	}}
	zones := &stubZoneRepo{zones: map[string]domain.DeliveryZone{
		"560001": {ID: "z1", Name: "Central Fast", Pincode: "560001", FastDelivery: true, Approved: true, Active: true},
	}}
	return Deps{
		ZoneSvc:   zonesvc.New(zones),
		RouterSvc: shoprouter.New(shops, "", logDiscard()),
		ProductRepo: &stubProducts{products: []domain.Product{
			{ID: "p1", Name: "Chicken Curry Cut", Price: 220, TaxRate: 5, Active: true},
		}},
		ShopRepo:    shops,
		UserRepo:    &stubUsers{},
		JWTSecret:   "test-secret",
		CORSOrigins: []string{"*"},
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"Chicken Curry Cut"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCheckZone_FastPincode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/delivery-zones/check", strings.NewReader(`{"pincode":"560001"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"available":true`) || !strings.Contains(body, `"fast_delivery":true`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCheckZone_UnknownPincode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/delivery-zones/check", strings.NewReader(`{"pincode":"999999"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"available":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckZone_MissingPincode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/delivery-zones/check", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNearestShop_WithinRadius(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/shops/nearest", strings.NewReader(`{"lat":12.98,"lng":77.60}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"shop-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNearestShop_OutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/shops/nearest", strings.NewReader(`{"lat":28.61,"lng":77.20}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}
