// File: kts/database/repository/coupon/coupon_mongo.go
package couponRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kts/database"
	"kts/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrExhausted is returned by Redeem when the usage cap is already reached
// (or the coupon went inactive between validation and redemption).
var ErrExhausted = fmt.Errorf("coupon usage limit reached")

// CouponRepository defines data access for discount coupons.
type CouponRepository interface {
	Create(c *models.Coupon) error
	Update(c *models.Coupon) error
	Delete(id string) error
	GetByCode(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
	Redeem(code string) error
}

// MongoCouponRepo implements CouponRepository using MongoDB.
type MongoCouponRepo struct {
	coll *mongo.Collection
}

// NewMongoCouponRepo creates a new instance of CouponRepository using MongoDB.
func NewMongoCouponRepo() CouponRepository {
	coll := database.Collection("coupons")
	repo := &MongoCouponRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCouponRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new coupon document. The code is normalized to upper case.
func (r *MongoCouponRepo) Create(c *models.Coupon) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// Update modifies an existing coupon document.
func (r *MongoCouponRepo) Update(c *models.Coupon) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": c.ID}, bson.M{"$set": c})
	if err != nil {
		return fmt.Errorf("failed to update coupon %s: %w", c.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon %s not found", c.ID)
	}
	return nil
}

// Delete removes a coupon document.
func (r *MongoCouponRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("coupon %s not found", id)
	}
	return nil
}

// GetByCode retrieves a coupon by its (upper-cased) code.
func (r *MongoCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	code = strings.ToUpper(strings.TrimSpace(code))
	var c models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch coupon %s: %w", code, err)
	}
	return &c, nil
}

// GetAll retrieves every coupon, newest first.
func (r *MongoCouponRepo) GetAll() ([]models.Coupon, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	for cursor.Next(ctx) {
		var c models.Coupon
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

// Redeem increments current_uses by one, atomically guarded by the usage
// cap. Two concurrent redemptions of a near-exhausted coupon cannot both
// succeed: the filter and the $inc execute as a single conditional update.
func (r *MongoCouponRepo) Redeem(code string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	code = strings.ToUpper(strings.TrimSpace(code))
	filter := bson.M{
		"code":      code,
		"is_active": true,
		"$or": bson.A{
			bson.M{"max_uses": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$current_uses", "$max_uses"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"current_uses": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon %s: %w", code, err)
	}
	if result.ModifiedCount == 0 {
		return ErrExhausted
	}
	return nil
}
