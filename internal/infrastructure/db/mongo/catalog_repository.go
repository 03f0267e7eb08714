package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

const (
	collectionMinecraftPlans = "minecraft_plans"
	collectionVPSPlans       = "vps_plans"
	collectionTLDs           = "tlds"
	collectionDomainFeatures = "domain_features"
)

// CatalogRepository implements ports.CatalogRepository over the four
// reference-data collections. Documents are identified by hex ObjectID
// strings assigned on first save.
type CatalogRepository struct {
	minecraftPlans *mongo.Collection
	vpsPlans       *mongo.Collection
	tlds           *mongo.Collection
	domainFeatures *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		minecraftPlans: db.Collection(collectionMinecraftPlans),
		vpsPlans:       db.Collection(collectionVPSPlans),
		tlds:           db.Collection(collectionTLDs),
		domainFeatures: db.Collection(collectionDomainFeatures),
	}
}

func listAll[T any](ctx context.Context, coll *mongo.Collection) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*T
	for cur.Next(ctx) {
		doc := new(T)
		if err := cur.Decode(doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

// upsertDoc assigns a fresh hex id when the document is new, otherwise
// replaces the stored record wholesale. Returns the id actually used.
func upsertDoc(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", err
	}
	m["_id"] = id

	_, err = coll.ReplaceOne(ctx, bson.M{"_id": id}, m, options.Replace().SetUpsert(true))
	return id, err
}

func deleteDoc(ctx context.Context, coll *mongo.Collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *CatalogRepository) ListMinecraftPlans(ctx context.Context) ([]*domain.MinecraftPlan, error) {
	return listAll[domain.MinecraftPlan](ctx, r.minecraftPlans)
}

func (r *CatalogRepository) UpsertMinecraftPlan(ctx context.Context, p *domain.MinecraftPlan) (*domain.MinecraftPlan, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	id, err := upsertDoc(ctx, r.minecraftPlans, p.ID, p)
	if err != nil {
		return nil, err
	}
	out := *p
	out.ID = id
	return &out, nil
}

func (r *CatalogRepository) DeleteMinecraftPlan(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.minecraftPlans, id)
}

func (r *CatalogRepository) ListVPSPlans(ctx context.Context) ([]*domain.VPSPlan, error) {
	return listAll[domain.VPSPlan](ctx, r.vpsPlans)
}

func (r *CatalogRepository) UpsertVPSPlan(ctx context.Context, p *domain.VPSPlan) (*domain.VPSPlan, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	id, err := upsertDoc(ctx, r.vpsPlans, p.ID, p)
	if err != nil {
		return nil, err
	}
	out := *p
	out.ID = id
	return &out, nil
}

func (r *CatalogRepository) DeleteVPSPlan(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.vpsPlans, id)
}

func (r *CatalogRepository) ListTLDs(ctx context.Context) ([]*domain.TLD, error) {
	return listAll[domain.TLD](ctx, r.tlds)
}

func (r *CatalogRepository) UpsertTLD(ctx context.Context, t *domain.TLD) (*domain.TLD, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	id, err := upsertDoc(ctx, r.tlds, t.ID, t)
	if err != nil {
		return nil, err
	}
	out := *t
	out.ID = id
	return &out, nil
}

func (r *CatalogRepository) DeleteTLD(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.tlds, id)
}

func (r *CatalogRepository) ListDomainFeatures(ctx context.Context) ([]*domain.DomainFeature, error) {
	return listAll[domain.DomainFeature](ctx, r.domainFeatures)
}

func (r *CatalogRepository) UpsertDomainFeature(ctx context.Context, f *domain.DomainFeature) (*domain.DomainFeature, error) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	id, err := upsertDoc(ctx, r.domainFeatures, f.ID, f)
	if err != nil {
		return nil, err
	}
	out := *f
	out.ID = id
	return &out, nil
}

func (r *CatalogRepository) DeleteDomainFeature(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.domainFeatures, id)
}
