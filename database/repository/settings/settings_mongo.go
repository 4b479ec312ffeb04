package settingsRepo

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

// SettingsRepository defines data access for the site-settings KV store.
type SettingsRepository interface {
	Get(key string) (*models.Setting, error)
	GetAll() ([]models.Setting, error)
	Set(key, value string) error
}

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a new instance of SettingsRepository using MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	repo := &MongoSettingsRepo{coll: database.Collection("site_settings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSettingsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get retrieves one setting by key; nil when absent.
func (r *MongoSettingsRepo) Get(key string) (*models.Setting, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.Setting
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch setting %s: %w", key, err)
	}
	return &s, nil
}

// GetAll retrieves every setting.
func (r *MongoSettingsRepo) GetAll() ([]models.Setting, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []models.Setting
	for cursor.Next(ctx) {
		var s models.Setting
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, nil
}

// Set upserts one setting.
func (r *MongoSettingsRepo) Set(key, value string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	s := models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"key": key}, s, opts); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
