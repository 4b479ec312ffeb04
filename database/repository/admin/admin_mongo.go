package adminRepo

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

// AdminRepository defines data access for admin accounts and their
// permission records.
type AdminRepository interface {
	Create(a *models.Admin) error
	Update(a *models.Admin) error
	Delete(id string) error
	GetByID(id string) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
	GetAll() ([]models.Admin, error)
	ListSuperAdmins() ([]models.Admin, error)
	GetPermissions(adminID string) (*models.AdminPermissions, error)
	SetPermissions(p *models.AdminPermissions) error
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll  *mongo.Collection
	perms *mongo.Collection
}

// NewMongoAdminRepo creates a new instance of AdminRepository using MongoDB.
func NewMongoAdminRepo() AdminRepository {
	repo := &MongoAdminRepo{
		coll:  database.Collection("admins"),
		perms: database.Collection("admin_permissions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAdminRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	permIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "admin_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.perms.Indexes().CreateOne(ctx, permIdx); err != nil {
		return fmt.Errorf("failed to create permission index: %w", err)
	}
	return nil
}

// Create inserts a new admin document.
func (r *MongoAdminRepo) Create(a *models.Admin) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// Update modifies an existing admin document.
func (r *MongoAdminRepo) Update(a *models.Admin) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	a.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": a.ID}, bson.M{"$set": a})
	if err != nil {
		return fmt.Errorf("failed to update admin %s: %w", a.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("admin %s not found", a.ID)
	}
	return nil
}

// Delete removes an admin and its permission record.
func (r *MongoAdminRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete admin %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("admin %s not found", id)
	}
	if _, err := r.perms.DeleteOne(ctx, bson.M{"admin_id": id}); err != nil {
		return fmt.Errorf("failed to delete permissions for admin %s: %w", id, err)
	}
	return nil
}

// GetByID retrieves an admin by its unique ID.
func (r *MongoAdminRepo) GetByID(id string) (*models.Admin, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves an admin by email.
func (r *MongoAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	return r.findOne(bson.M{"email": email})
}

func (r *MongoAdminRepo) findOne(filter bson.M) (*models.Admin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Admin
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return &a, nil
}

// GetAll retrieves every admin account.
func (r *MongoAdminRepo) GetAll() ([]models.Admin, error) {
	return r.find(bson.M{})
}

// ListSuperAdmins retrieves all super-admin accounts.
func (r *MongoAdminRepo) ListSuperAdmins() ([]models.Admin, error) {
	return r.find(bson.M{"is_super_admin": true})
}

func (r *MongoAdminRepo) find(filter bson.M) ([]models.Admin, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []models.Admin
	for cursor.Next(ctx) {
		var a models.Admin
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// GetPermissions retrieves the permission record for an admin. Returns nil
// when no record exists; callers apply conservative defaults.
func (r *MongoAdminRepo) GetPermissions(adminID string) (*models.AdminPermissions, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.AdminPermissions
	if err := r.perms.FindOne(ctx, bson.M{"admin_id": adminID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch permissions for %s: %w", adminID, err)
	}
	return &p, nil
}

// SetPermissions upserts the permission record for an admin.
func (r *MongoAdminRepo) SetPermissions(p *models.AdminPermissions) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.perms.ReplaceOne(ctx, bson.M{"admin_id": p.AdminID}, p, opts); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", p.AdminID, err)
	}
	return nil
}
