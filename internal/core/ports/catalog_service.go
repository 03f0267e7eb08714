package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// CatalogService serves the public marketing data and the admin plan forms.
// Public reads go through a cache; admin writes invalidate it.
type CatalogService interface {
	MinecraftPlans(ctx context.Context) ([]*domain.MinecraftPlan, error)
	SaveMinecraftPlan(ctx context.Context, p *domain.MinecraftPlan) (*domain.MinecraftPlan, error)
	DeleteMinecraftPlan(ctx context.Context, id string) error

	VPSPlans(ctx context.Context) ([]*domain.VPSPlan, error)
	SaveVPSPlan(ctx context.Context, p *domain.VPSPlan) (*domain.VPSPlan, error)
	DeleteVPSPlan(ctx context.Context, id string) error

	TLDs(ctx context.Context) ([]*domain.TLD, error)
	SaveTLD(ctx context.Context, t *domain.TLD) (*domain.TLD, error)
	DeleteTLD(ctx context.Context, id string) error

	DomainFeatures(ctx context.Context) ([]*domain.DomainFeature, error)
	SaveDomainFeature(ctx context.Context, f *domain.DomainFeature) (*domain.DomainFeature, error)
	DeleteDomainFeature(ctx context.Context, id string) error
}
