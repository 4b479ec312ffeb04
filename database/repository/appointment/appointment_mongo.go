package appointmentRepo

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

// AppointmentRepository defines data access for appointments and the
// deletion-request queue that guards their removal.
type AppointmentRepository interface {
	Create(a *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	GetByReference(ref string) (*models.Appointment, error)
	GetAll(status string) ([]models.Appointment, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	CountByStatus() (map[string]int, error)
	CreatedSince(t time.Time) ([]time.Time, error)

	CreateDeletionRequest(req *models.DeletionRequest) error
	GetDeletionRequest(id string) (*models.DeletionRequest, error)
	ListDeletionRequests(status string) ([]models.DeletionRequest, error)
	UpdateDeletionRequest(req *models.DeletionRequest) error
}

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll     *mongo.Collection
	requests *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{
		coll:     database.Collection("appointments"),
		requests: database.Collection("deletion_requests"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reference_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(a *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByReference retrieves an appointment by its public reference code.
func (r *MongoAppointmentRepo) GetByReference(ref string) (*models.Appointment, error) {
	return r.findOne(bson.M{"reference_code": ref})
}

func (r *MongoAppointmentRepo) findOne(filter bson.M) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &a, nil
}

// GetAll retrieves appointments, optionally filtered by status, newest first.
func (r *MongoAppointmentRepo) GetAll(status string) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// UpdateStatus sets the appointment status.
func (r *MongoAppointmentRepo) UpdateStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

// Delete removes an appointment document.
func (r *MongoAppointmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

// CountByStatus aggregates appointment counts per status.
func (r *MongoAppointmentRepo) CountByStatus() (map[string]int, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointment statuses: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CreatedSince returns creation timestamps of appointments created at or
// after t, for day-bucket aggregation.
func (r *MongoAppointmentRepo) CreatedSince(t time.Time) ([]time.Time, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"created_at": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"created_at": bson.M{"$gte": t}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment timestamps: %w", err)
	}
	defer cursor.Close(ctx)

	var out []time.Time
	for cursor.Next(ctx) {
		var row struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode timestamp: %w", err)
		}
		out = append(out, row.CreatedAt)
	}
	return out, nil
}

// --- Deletion requests ---

// CreateDeletionRequest records a pending removal for super-admin review.
func (r *MongoAppointmentRepo) CreateDeletionRequest(req *models.DeletionRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.requests.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create deletion request: %w", err)
	}
	return nil
}

// GetDeletionRequest retrieves one deletion request by ID.
func (r *MongoAppointmentRepo) GetDeletionRequest(id string) (*models.DeletionRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.DeletionRequest
	if err := r.requests.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch deletion request %s: %w", id, err)
	}
	return &req, nil
}

// ListDeletionRequests retrieves deletion requests, optionally by status.
func (r *MongoAppointmentRepo) ListDeletionRequests(status string) ([]models.DeletionRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve deletion requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.DeletionRequest
	for cursor.Next(ctx) {
		var req models.DeletionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode deletion request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// UpdateDeletionRequest persists a reviewed deletion request.
func (r *MongoAppointmentRepo) UpdateDeletionRequest(req *models.DeletionRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.UpdatedAt = time.Now()
	result, err := r.requests.UpdateOne(ctx, bson.M{"id": req.ID}, bson.M{"$set": req})
	if err != nil {
		return fmt.Errorf("failed to update deletion request %s: %w", req.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("deletion request %s not found", req.ID)
	}
	return nil
}
