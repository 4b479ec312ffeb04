package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"kts/database"
	"kts/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalyticsRepository defines data access for the append-only page-view log.
type AnalyticsRepository interface {
	Insert(v *models.PageView) error
	ListSince(t time.Time) ([]models.PageView, error)
	CountBefore(t time.Time) (int64, error)
}

// MongoAnalyticsRepo implements AnalyticsRepository using MongoDB.
type MongoAnalyticsRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalyticsRepo creates a new instance of AnalyticsRepository using MongoDB.
func NewMongoAnalyticsRepo() AnalyticsRepository {
	repo := &MongoAnalyticsRepo{coll: database.Collection("page_views")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAnalyticsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	idx := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}}
	if _, err := r.coll.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert appends one page view. The log is never updated or pruned here.
func (r *MongoAnalyticsRepo) Insert(v *models.PageView) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	v.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to insert page view: %w", err)
	}
	return nil
}

// ListSince returns page views created at or after t.
func (r *MongoAnalyticsRepo) ListSince(t time.Time) ([]models.PageView, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"created_at": bson.M{"$gte": t}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve page views: %w", err)
	}
	defer cursor.Close(ctx)

	var views []models.PageView
	for cursor.Next(ctx) {
		var v models.PageView
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode page view: %w", err)
		}
		views = append(views, v)
	}
	return views, nil
}

// CountBefore counts page views created strictly before t.
func (r *MongoAnalyticsRepo) CountBefore(t time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"created_at": bson.M{"$lt": t}})
	if err != nil {
		return 0, fmt.Errorf("failed to count page views: %w", err)
	}
	return n, nil
}
