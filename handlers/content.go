// File: kts/handlers/content.go
package handlers

import (
	"net/http"

	"kts/models"
	"kts/services/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler exposes the marketing-site content: team, testimonials,
// blog and the contact inbox.
type ContentHandler struct {
	Content content.ContentService
}

// NewContentHandler creates a new ContentHandler instance.
func NewContentHandler(svc content.ContentService) *ContentHandler {
	return &ContentHandler{Content: svc}
}

// --- public site surface ---

// PublicTeamHandler returns visible team members.
func (h *ContentHandler) PublicTeamHandler(c *gin.Context) {
	team, err := h.Content.ListTeam(true)
	if err != nil {
		getLogger(c).Error("Failed to list team", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get team"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

// PublicTestimonialsHandler returns visible testimonials.
func (h *ContentHandler) PublicTestimonialsHandler(c *gin.Context) {
	items, err := h.Content.ListTestimonials(true)
	if err != nil {
		getLogger(c).Error("Failed to list testimonials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get testimonials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

// PublicBlogListHandler returns published posts.
func (h *ContentHandler) PublicBlogListHandler(c *gin.Context) {
	posts, err := h.Content.ListBlogPosts(true)
	if err != nil {
		getLogger(c).Error("Failed to list blog posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// PublicBlogPostHandler returns one published post by slug.
func (h *ContentHandler) PublicBlogPostHandler(c *gin.Context) {
	post, err := h.Content.GetBlogPostBySlug(c.Param("slug"))
	if err != nil {
		getLogger(c).Error("Failed to get blog post", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}
	if post == nil || post.PublishedAt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ContactHandler accepts a contact-form submission.
func (h *ContentHandler) ContactHandler(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	msg, err := h.Content.SubmitContactMessage(input.Name, input.Email, input.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}

// --- back-office surface ---

// AdminTeamHandler returns all team members, hidden ones included.
func (h *ContentHandler) AdminTeamHandler(c *gin.Context) {
	team, err := h.Content.ListTeam(false)
	if err != nil {
		getLogger(c).Error("Failed to list team", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get team"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

// SaveTeamMemberHandler creates or updates a team member.
func (h *ContentHandler) SaveTeamMemberHandler(c *gin.Context) {
	var m models.TeamMember
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		m.ID = id
	}
	if err := h.Content.SaveTeamMember(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteTeamMemberHandler removes a team member.
func (h *ContentHandler) DeleteTeamMemberHandler(c *gin.Context) {
	if err := h.Content.DeleteTeamMember(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete team member", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AdminTestimonialsHandler returns all testimonials.
func (h *ContentHandler) AdminTestimonialsHandler(c *gin.Context) {
	items, err := h.Content.ListTestimonials(false)
	if err != nil {
		getLogger(c).Error("Failed to list testimonials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get testimonials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

// SaveTestimonialHandler creates or updates a testimonial.
func (h *ContentHandler) SaveTestimonialHandler(c *gin.Context) {
	var t models.Testimonial
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		t.ID = id
	}
	if err := h.Content.SaveTestimonial(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTestimonialHandler removes a testimonial.
func (h *ContentHandler) DeleteTestimonialHandler(c *gin.Context) {
	if err := h.Content.DeleteTestimonial(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete testimonial", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete testimonial"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AdminBlogListHandler returns all posts, drafts included.
func (h *ContentHandler) AdminBlogListHandler(c *gin.Context) {
	posts, err := h.Content.ListBlogPosts(false)
	if err != nil {
		getLogger(c).Error("Failed to list blog posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SaveBlogPostHandler creates or updates a post.
func (h *ContentHandler) SaveBlogPostHandler(c *gin.Context) {
	var p models.BlogPost
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}
	if err := h.Content.SaveBlogPost(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteBlogPostHandler removes a post.
func (h *ContentHandler) DeleteBlogPostHandler(c *gin.Context) {
	if err := h.Content.DeleteBlogPost(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete blog post", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// MessagesHandler returns the contact inbox.
func (h *ContentHandler) MessagesHandler(c *gin.Context) {
	msgs, err := h.Content.ListMessages()
	if err != nil {
		getLogger(c).Error("Failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkMessageReadHandler flags a message as handled.
func (h *ContentHandler) MarkMessageReadHandler(c *gin.Context) {
	if err := h.Content.MarkMessageRead(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to mark message read", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
