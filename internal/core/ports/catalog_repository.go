package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// CatalogRepository persists the four reference-data collections backing the
// marketing pages. All writes go through the admin forms; there is no
// lifecycle beyond CRUD.
type CatalogRepository interface {
	ListMinecraftPlans(ctx context.Context) ([]*domain.MinecraftPlan, error)
	UpsertMinecraftPlan(ctx context.Context, p *domain.MinecraftPlan) (*domain.MinecraftPlan, error)
	DeleteMinecraftPlan(ctx context.Context, id string) error

	ListVPSPlans(ctx context.Context) ([]*domain.VPSPlan, error)
	UpsertVPSPlan(ctx context.Context, p *domain.VPSPlan) (*domain.VPSPlan, error)
	DeleteVPSPlan(ctx context.Context, id string) error

	ListTLDs(ctx context.Context) ([]*domain.TLD, error)
	UpsertTLD(ctx context.Context, t *domain.TLD) (*domain.TLD, error)
	DeleteTLD(ctx context.Context, id string) error

	ListDomainFeatures(ctx context.Context) ([]*domain.DomainFeature, error)
	UpsertDomainFeature(ctx context.Context, f *domain.DomainFeature) (*domain.DomainFeature, error)
	DeleteDomainFeature(ctx context.Context, id string) error
}
