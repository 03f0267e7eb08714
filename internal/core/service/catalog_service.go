package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// CatalogCache is the read-through cache in front of the public catalog
// endpoints (Redis in production). A miss or cache error falls back to the
// repository; writes invalidate the affected key.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, key string) error
}

const (
	cacheKeyMinecraft = "catalog:minecraft_plans"
	cacheKeyVPS       = "catalog:vps_plans"
	cacheKeyTLDs      = "catalog:tlds"
	cacheKeyFeatures  = "catalog:domain_features"
)

// CatalogService serves the marketing reference data.
type CatalogService struct {
	repo   ports.CatalogRepository
	cache  CatalogCache
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, cache CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

func (s *CatalogService) MinecraftPlans(ctx context.Context) ([]*domain.MinecraftPlan, error) {
	return cachedList(ctx, s, cacheKeyMinecraft, s.repo.ListMinecraftPlans)
}

func (s *CatalogService) SaveMinecraftPlan(ctx context.Context, p *domain.MinecraftPlan) (*domain.MinecraftPlan, error) {
	saved, err := s.repo.UpsertMinecraftPlan(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyMinecraft)
	return saved, nil
}

func (s *CatalogService) DeleteMinecraftPlan(ctx context.Context, id string) error {
	if err := s.repo.DeleteMinecraftPlan(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyMinecraft)
	return nil
}

func (s *CatalogService) VPSPlans(ctx context.Context) ([]*domain.VPSPlan, error) {
	return cachedList(ctx, s, cacheKeyVPS, s.repo.ListVPSPlans)
}

func (s *CatalogService) SaveVPSPlan(ctx context.Context, p *domain.VPSPlan) (*domain.VPSPlan, error) {
	saved, err := s.repo.UpsertVPSPlan(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyVPS)
	return saved, nil
}

func (s *CatalogService) DeleteVPSPlan(ctx context.Context, id string) error {
	if err := s.repo.DeleteVPSPlan(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyVPS)
	return nil
}

func (s *CatalogService) TLDs(ctx context.Context) ([]*domain.TLD, error) {
	return cachedList(ctx, s, cacheKeyTLDs, s.repo.ListTLDs)
}

func (s *CatalogService) SaveTLD(ctx context.Context, t *domain.TLD) (*domain.TLD, error) {
	saved, err := s.repo.UpsertTLD(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyTLDs)
	return saved, nil
}

func (s *CatalogService) DeleteTLD(ctx context.Context, id string) error {
	if err := s.repo.DeleteTLD(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyTLDs)
	return nil
}

func (s *CatalogService) DomainFeatures(ctx context.Context) ([]*domain.DomainFeature, error) {
	return cachedList(ctx, s, cacheKeyFeatures, s.repo.ListDomainFeatures)
}

func (s *CatalogService) SaveDomainFeature(ctx context.Context, f *domain.DomainFeature) (*domain.DomainFeature, error) {
	saved, err := s.repo.UpsertDomainFeature(ctx, f)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyFeatures)
	return saved, nil
}

func (s *CatalogService) DeleteDomainFeature(ctx context.Context, id string) error {
	if err := s.repo.DeleteDomainFeature(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyFeatures)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache invalidation failed")
	}
}

// cachedList reads the list through the cache, falling back to the repository
// on miss or cache failure.
func cachedList[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	if s.cache != nil {
		raw, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		} else if hit {
			var items []*T
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
			s.logger.Warn().Str("key", key).Msg("catalog cache entry corrupt, reloading")
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, raw); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
			}
		}
	}
	return items, nil
}
