package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

const (
	collectionCoupons     = "coupons"
	collectionRedemptions = "coupon_redemptions"
)

// CouponRepository implements ports.CouponRepository on MongoDB.
type CouponRepository struct {
	coupons     *mongo.Collection
	redemptions *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{
		coupons:     db.Collection(collectionCoupons),
		redemptions: db.Collection(collectionRedemptions),
	}
}

type couponDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Code               string             `bson:"code"`
	DiscountPercentage int                `bson:"discount_percentage"`
	MaxUses            int                `bson:"max_uses"`
	UsageCount         int                `bson:"usage_count"`
	IsActive           bool               `bson:"is_active"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func (d *couponDoc) toDomain() *domain.Coupon {
	return &domain.Coupon{
		ID:                 d.ID.Hex(),
		Code:               d.Code,
		DiscountPercentage: d.DiscountPercentage,
		MaxUses:            d.MaxUses,
		UsageCount:         d.UsageCount,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt,
	}
}

// Insert persists a new coupon. Uniqueness of the normalized code is enforced
// by the index, not by a read-before-write; a concurrent duplicate surfaces
// as a duplicate-key error here.
func (r *CouponRepository) Insert(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := couponDoc{
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		MaxUses:            c.MaxUses,
		UsageCount:         c.UsageCount,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
	}

	res, err := r.coupons.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCouponExists
		}
		return nil, err
	}

	out := *c
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc couponDoc
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}

	var doc couponDoc
	if err := r.coupons.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CouponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coupons.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Coupon
	for cur.Next(ctx) {
		var doc couponDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *CouponRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCouponNotFound
	}

	res, err := r.coupons.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCouponNotFound
	}

	res, err := r.coupons.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}

// Redeem consumes one use in a single conditional statement. The filter
// requires is_active and usage_count < max_uses, so two concurrent
// redemptions of the last use cannot both match.
func (r *CouponRepository) Redeem(ctx context.Context, id string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}

	filter := bson.M{
		"_id":       oid,
		"is_active": true,
		"$expr":     bson.M{"$lt": bson.A{"$usage_count", "$max_uses"}},
	}
	update := bson.M{"$inc": bson.M{"usage_count": 1}}

	var doc couponDoc
	err = r.coupons.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish "gone" from "not redeemable".
			if _, findErr := r.FindByID(ctx, id); errors.Is(findErr, domain.ErrCouponNotFound) {
				return nil, domain.ErrCouponNotFound
			}
			return nil, domain.ErrCouponExhausted
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

type redemptionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CouponID  primitive.ObjectID `bson:"coupon_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *CouponRepository) InsertRedemption(ctx context.Context, red *domain.Redemption) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	couponOID, err := primitive.ObjectIDFromHex(red.CouponID)
	if err != nil {
		return domain.ErrCouponNotFound
	}

	_, err = r.redemptions.InsertOne(ctx, redemptionDoc{
		CouponID:  couponOID,
		UserID:    red.UserID,
		CreatedAt: red.CreatedAt,
	})
	return err
}

// ListRedemptions joins redemptions with the redeeming user via $lookup, the
// Mongo flavour of the admin page's relational embed.
func (r *CouponRepository) ListRedemptions(ctx context.Context, couponID string) ([]*ports.RedemptionWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(couponID)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"coupon_id": oid}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
	}

	cur, err := r.redemptions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	type joinedDoc struct {
		ID        primitive.ObjectID `bson:"_id"`
		CouponID  primitive.ObjectID `bson:"coupon_id"`
		UserID    string             `bson:"user_id"`
		CreatedAt time.Time          `bson:"created_at"`
		User      *domain.User       `bson:"user"`
	}

	var out []*ports.RedemptionWithUser
	for cur.Next(ctx) {
		var doc joinedDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &ports.RedemptionWithUser{
			Redemption: domain.Redemption{
				ID:        doc.ID.Hex(),
				CouponID:  doc.CouponID.Hex(),
				UserID:    doc.UserID,
				CreatedAt: doc.CreatedAt,
			},
			User: doc.User,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique code index plus lookup indexes.
func (r *CouponRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coupons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.redemptions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "coupon_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}
