package contentRepo

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

// ContentRepository defines data access for team members, testimonials,
// blog posts and contact messages.
type ContentRepository interface {
	CreateTeamMember(m *models.TeamMember) error
	UpdateTeamMember(m *models.TeamMember) error
	DeleteTeamMember(id string) error
	ListTeamMembers(visibleOnly bool) ([]models.TeamMember, error)

	CreateTestimonial(t *models.Testimonial) error
	UpdateTestimonial(t *models.Testimonial) error
	DeleteTestimonial(id string) error
	ListTestimonials(visibleOnly bool) ([]models.Testimonial, error)

	CreateBlogPost(p *models.BlogPost) error
	UpdateBlogPost(p *models.BlogPost) error
	DeleteBlogPost(id string) error
	GetBlogPostBySlug(slug string) (*models.BlogPost, error)
	ListBlogPosts(publishedOnly bool) ([]models.BlogPost, error)

	CreateMessage(m *models.ContactMessage) error
	ListMessages() ([]models.ContactMessage, error)
	MarkMessageRead(id string) error
}

// MongoContentRepo implements ContentRepository using MongoDB.
type MongoContentRepo struct {
	team         *mongo.Collection
	testimonials *mongo.Collection
	posts        *mongo.Collection
	messages     *mongo.Collection
}

// NewMongoContentRepo creates a new instance of ContentRepository using MongoDB.
func NewMongoContentRepo() ContentRepository {
	repo := &MongoContentRepo{
		team:         database.Collection("team_members"),
		testimonials: database.Collection("testimonials"),
		posts:        database.Collection("blog_posts"),
		messages:     database.Collection("contact_messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoContentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	slugIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.posts.Indexes().CreateOne(ctx, slugIdx); err != nil {
		return fmt.Errorf("failed to create blog slug index: %w", err)
	}
	return nil
}

// --- Team members ---

func (r *MongoContentRepo) CreateTeamMember(m *models.TeamMember) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := r.team.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) UpdateTeamMember(m *models.TeamMember) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.UpdatedAt = time.Now()
	result, err := r.team.UpdateOne(ctx, bson.M{"id": m.ID}, bson.M{"$set": m})
	if err != nil {
		return fmt.Errorf("failed to update team member %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("team member %s not found", m.ID)
	}
	return nil
}

func (r *MongoContentRepo) DeleteTeamMember(id string) error {
	return r.deleteByID(r.team, "team member", id)
}

func (r *MongoContentRepo) ListTeamMembers(visibleOnly bool) ([]models.TeamMember, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if visibleOnly {
		filter["is_visible"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := r.team.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	for cursor.Next(ctx) {
		var m models.TeamMember
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode team member: %w", err)
		}
		members = append(members, m)
	}
	return members, nil
}

// --- Testimonials ---

func (r *MongoContentRepo) CreateTestimonial(t *models.Testimonial) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := r.testimonials.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) UpdateTestimonial(t *models.Testimonial) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.UpdatedAt = time.Now()
	result, err := r.testimonials.UpdateOne(ctx, bson.M{"id": t.ID}, bson.M{"$set": t})
	if err != nil {
		return fmt.Errorf("failed to update testimonial %s: %w", t.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("testimonial %s not found", t.ID)
	}
	return nil
}

func (r *MongoContentRepo) DeleteTestimonial(id string) error {
	return r.deleteByID(r.testimonials, "testimonial", id)
}

func (r *MongoContentRepo) ListTestimonials(visibleOnly bool) ([]models.Testimonial, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if visibleOnly {
		filter["is_visible"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := r.testimonials.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Testimonial
	for cursor.Next(ctx) {
		var t models.Testimonial
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode testimonial: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// --- Blog posts ---

func (r *MongoContentRepo) CreateBlogPost(p *models.BlogPost) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) UpdateBlogPost(p *models.BlogPost) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	result, err := r.posts.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("failed to update blog post %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("blog post %s not found", p.ID)
	}
	return nil
}

func (r *MongoContentRepo) DeleteBlogPost(id string) error {
	return r.deleteByID(r.posts, "blog post", id)
}

func (r *MongoContentRepo) GetBlogPostBySlug(slug string) (*models.BlogPost, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.BlogPost
	if err := r.posts.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch blog post %s: %w", slug, err)
	}
	return &p, nil
}

func (r *MongoContentRepo) ListBlogPosts(publishedOnly bool) ([]models.BlogPost, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if publishedOnly {
		filter["is_published"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.BlogPost
	for cursor.Next(ctx) {
		var p models.BlogPost
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode blog post: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// --- Contact messages ---

func (r *MongoContentRepo) CreateMessage(m *models.ContactMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.CreatedAt = time.Now()
	if _, err := r.messages.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) ListMessages() ([]models.ContactMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.messages.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ContactMessage
	for cursor.Next(ctx) {
		var m models.ContactMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode contact message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MongoContentRepo) MarkMessageRead(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.messages.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark message %s read: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("contact message %s not found", id)
	}
	return nil
}

func (r *MongoContentRepo) deleteByID(coll *mongo.Collection, kind, id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return nil
}
