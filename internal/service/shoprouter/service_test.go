package shoprouter

import (
	"context"
	"errors"
	"testing"

	"freshbasket/internal/domain"
)

type stubShopRepo struct {
	shops   []domain.Shop
	byID    map[string]*domain.Shop
	listErr error
}

func (s *stubShopRepo) ListActive(_ context.Context) ([]domain.Shop, error) {
	return s.shops, s.listErr
}

func (s *stubShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	if shop, ok := s.byID[id]; ok {
		return shop, nil
	}
	return nil, domain.ErrNotFound
}

func TestResolveExplicitActiveShop(t *testing.T) {
	repo := &stubShopRepo{byID: map[string]*domain.Shop{
		"s1": {ID: "s1", Active: true},
	}}
	svc := New(repo, "fallback", nil)
	got, err := svc.Resolve(context.Background(), "s1", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s1" {
		t.Fatalf("expected s1, got %s", got)
	}
}

func TestResolveExplicitInactiveShopFallsThrough(t *testing.T) {
	repo := &stubShopRepo{byID: map[string]*domain.Shop{
		"s1": {ID: "s1", Active: false},
	}}
	svc := New(repo, "fallback", nil)
	got, err := svc.Resolve(context.Background(), "s1", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestResolveNearestWithinRadius(t *testing.T) {
	// A is ~6.7 km north of the destination with a 5 km radius; B is ~5.6 km
	// further north but covers 50 km. Only B qualifies.
	repo := &stubShopRepo{shops: []domain.Shop{
		{ID: "a", Lat: 13.06, Lng: 77.60, RadiusKM: 5, Active: true},
		{ID: "b", Lat: 13.11, Lng: 77.60, RadiusKM: 50, Active: true},
	}}
	svc := New(repo, "fallback", nil)
	lat, lng := 13.0, 77.60
	got, err := svc.Resolve(context.Background(), "", &lat, &lng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "b" {
		t.Fatalf("expected b, got %s", got)
	}
}

func TestResolvePrefersClosestQualifyingShop(t *testing.T) {
	repo := &stubShopRepo{shops: []domain.Shop{
		{ID: "far", Lat: 13.10, Lng: 77.60, RadiusKM: 50, Active: true},
		{ID: "near", Lat: 13.01, Lng: 77.60, RadiusKM: 50, Active: true},
	}}
	svc := New(repo, "fallback", nil)
	lat, lng := 13.0, 77.60
	got, err := svc.Resolve(context.Background(), "", &lat, &lng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "near" {
		t.Fatalf("expected near, got %s", got)
	}
}

func TestResolveTieBrokenByLowestID(t *testing.T) {
	repo := &stubShopRepo{shops: []domain.Shop{
		{ID: "z", Lat: 13.0, Lng: 77.60, RadiusKM: 10, Active: true},
		{ID: "a", Lat: 13.0, Lng: 77.60, RadiusKM: 10, Active: true},
	}}
	svc := New(repo, "fallback", nil)
	lat, lng := 13.0, 77.60
	got, err := svc.Resolve(context.Background(), "", &lat, &lng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a" {
		t.Fatalf("expected a, got %s", got)
	}
}

func TestResolveOutsideAllRadiiFallsBack(t *testing.T) {
	repo := &stubShopRepo{shops: []domain.Shop{
		{ID: "a", Lat: 13.06, Lng: 77.60, RadiusKM: 1, Active: true},
	}}
	svc := New(repo, "fallback", nil)
	lat, lng := 12.0, 76.0
	got, err := svc.Resolve(context.Background(), "", &lat, &lng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestResolveNoCoordinatesFallsBack(t *testing.T) {
	svc := New(&stubShopRepo{}, "fallback", nil)
	got, err := svc.Resolve(context.Background(), "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestNearestNotServiceable(t *testing.T) {
	repo := &stubShopRepo{shops: []domain.Shop{
		{ID: "a", Lat: 13.06, Lng: 77.60, RadiusKM: 1, Active: true},
	}}
	svc := New(repo, "fallback", nil)
	_, err := svc.Nearest(context.Background(), 12.0, 76.0)
	if !errors.Is(err, domain.ErrNotServiceable) {
		t.Fatalf("expected not serviceable, got %v", err)
	}
}

func TestNearestReturnsShop(t *testing.T) {
	shop := &domain.Shop{ID: "a", Lat: 13.0, Lng: 77.60, RadiusKM: 10, Active: true}
	repo := &stubShopRepo{
		shops: []domain.Shop{*shop},
		byID:  map[string]*domain.Shop{"a": shop},
	}
	svc := New(repo, "fallback", nil)
	got, err := svc.Nearest(context.Background(), 13.0, 77.61)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a" {
		t.Fatalf("expected a, got %s", got.ID)
	}
}

func TestResolveListError(t *testing.T) {
	repo := &stubShopRepo{listErr: errors.New("boom")}
	svc := New(repo, "fallback", nil)
	lat, lng := 13.0, 77.60
	_, err := svc.Resolve(context.Background(), "", &lat, &lng)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}
