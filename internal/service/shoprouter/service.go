package shoprouter

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"

	"freshbasket/internal/domain"
	"freshbasket/internal/geo"
)

type shopRepo interface {
	ListActive(ctx context.Context) ([]domain.Shop, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
}

// Service resolves which shop fulfills an order: explicit selection first,
// then nearest active shop within its delivery radius, then the configured
// fallback shop.
type Service struct {
	repo          shopRepo
	defaultShopID string
	logger        *log.Logger
}

func New(repo shopRepo, defaultShopID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, defaultShopID: defaultShopID, logger: logger}
}

// Resolve picks the fulfilling shop for an order. An explicit id wins when it
// names an active shop; otherwise the nearest qualifying shop by coordinates;
// otherwise the fallback shop.
func (s *Service) Resolve(ctx context.Context, explicitID string, lat, lng *float64) (string, error) {
	if explicitID != "" {
		shop, err := s.repo.GetByID(ctx, explicitID)
		if err == nil && shop.Active {
			return shop.ID, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		s.logger.Printf("shop router: explicit shop %s unusable, falling back", explicitID)
	}

	if lat != nil && lng != nil {
		id, err := s.nearestWithin(ctx, *lat, *lng)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrNotServiceable) {
			return "", err
		}
	}

	return s.defaultShopID, nil
}

// Nearest is the storefront "find my shop" lookup. Unlike Resolve it reports
// ErrNotServiceable instead of substituting the fallback shop.
func (s *Service) Nearest(ctx context.Context, lat, lng float64) (*domain.Shop, error) {
	id, err := s.nearestWithin(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) nearestWithin(ctx context.Context, lat, lng float64) (string, error) {
	shops, err := s.repo.ListActive(ctx)
	if err != nil {
		return "", err
	}

	type candidate struct {
		id   string
		dist float64
	}
	var candidates []candidate
	for _, shop := range shops {
		d := geo.DistanceKM(lat, lng, shop.Lat, shop.Lng)
		if d <= shop.RadiusKM {
			candidates = append(candidates, candidate{id: shop.ID, dist: d})
		}
	}
	if len(candidates) == 0 {
		return "", domain.ErrNotServiceable
	}

	// Deterministic pick: closest shop, ties broken by lowest id.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})
	return candidates[0].id, nil
}
