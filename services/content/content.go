// File: kts/services/content/content.go
package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	contentRepo "kts/database/repository/content"
	"kts/models"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification service this package needs.
type Notifier interface {
	NewMessage(m *models.ContactMessage)
}

// ContentService manages the marketing-site content: team members,
// testimonials, blog posts and inbound contact messages.
type ContentService interface {
	ListTeam(visibleOnly bool) ([]models.TeamMember, error)
	SaveTeamMember(m *models.TeamMember) error
	DeleteTeamMember(id string) error

	ListTestimonials(visibleOnly bool) ([]models.Testimonial, error)
	SaveTestimonial(t *models.Testimonial) error
	DeleteTestimonial(id string) error

	ListBlogPosts(publishedOnly bool) ([]models.BlogPost, error)
	GetBlogPostBySlug(slug string) (*models.BlogPost, error)
	SaveBlogPost(p *models.BlogPost) error
	DeleteBlogPost(id string) error

	SubmitContactMessage(name, email, message string) (*models.ContactMessage, error)
	ListMessages() ([]models.ContactMessage, error)
	MarkMessageRead(id string) error
}

// DefaultContentService is the production implementation.
type DefaultContentService struct {
	Repo   contentRepo.ContentRepository
	Notify Notifier
}

// ListTeam returns team members ordered for display.
func (s *DefaultContentService) ListTeam(visibleOnly bool) ([]models.TeamMember, error) {
	return s.Repo.ListTeamMembers(visibleOnly)
}

// SaveTeamMember creates or updates a team member.
func (s *DefaultContentService) SaveTeamMember(m *models.TeamMember) error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("team member name is required")
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
		return s.Repo.CreateTeamMember(m)
	}
	return s.Repo.UpdateTeamMember(m)
}

// DeleteTeamMember removes a team member.
func (s *DefaultContentService) DeleteTeamMember(id string) error {
	return s.Repo.DeleteTeamMember(id)
}

// ListTestimonials returns testimonials ordered for display.
func (s *DefaultContentService) ListTestimonials(visibleOnly bool) ([]models.Testimonial, error) {
	return s.Repo.ListTestimonials(visibleOnly)
}

// SaveTestimonial creates or updates a testimonial.
func (s *DefaultContentService) SaveTestimonial(t *models.Testimonial) error {
	if strings.TrimSpace(t.Author) == "" || strings.TrimSpace(t.Quote) == "" {
		return errors.New("testimonial author and quote are required")
	}
	if t.Rating < 1 || t.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
		return s.Repo.CreateTestimonial(t)
	}
	return s.Repo.UpdateTestimonial(t)
}

// DeleteTestimonial removes a testimonial.
func (s *DefaultContentService) DeleteTestimonial(id string) error {
	return s.Repo.DeleteTestimonial(id)
}

// ListBlogPosts returns blog posts, newest first.
func (s *DefaultContentService) ListBlogPosts(publishedOnly bool) ([]models.BlogPost, error) {
	return s.Repo.ListBlogPosts(publishedOnly)
}

// GetBlogPostBySlug returns one post by its URL slug, nil when absent.
func (s *DefaultContentService) GetBlogPostBySlug(slug string) (*models.BlogPost, error) {
	return s.Repo.GetBlogPostBySlug(slug)
}

// SaveBlogPost creates or updates a post, deriving the slug from the title
// when none was supplied.
func (s *DefaultContentService) SaveBlogPost(p *models.BlogPost) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("blog post title is required")
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
		return s.Repo.CreateBlogPost(p)
	}
	return s.Repo.UpdateBlogPost(p)
}

// DeleteBlogPost removes a post.
func (s *DefaultContentService) DeleteBlogPost(id string) error {
	return s.Repo.DeleteBlogPost(id)
}

// SubmitContactMessage stores a contact-form post and notifies the admins.
func (s *DefaultContentService) SubmitContactMessage(name, email, message string) (*models.ContactMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is required")
	}
	m := &models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Message:   strings.TrimSpace(message),
		Source:    "contact_form",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateMessage(m); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	if s.Notify != nil {
		s.Notify.NewMessage(m)
	}
	return m, nil
}

// ListMessages returns the admin inbox, newest first.
func (s *DefaultContentService) ListMessages() ([]models.ContactMessage, error) {
	return s.Repo.ListMessages()
}

// MarkMessageRead flags a message as handled.
func (s *DefaultContentService) MarkMessageRead(id string) error {
	return s.Repo.MarkMessageRead(id)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a post title into a URL-safe slug.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
