package models

import "time"

// TeamMember is displayed on the "our team" page.
type TeamMember struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	Bio          string    `bson:"bio" json:"bio"`
	PhotoURL     string    `bson:"photo_url" json:"photo_url"`
	IsVisible    bool      `bson:"is_visible" json:"is_visible"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	ID           string    `bson:"id" json:"id"`
	Author       string    `bson:"author" json:"author"`
	Quote        string    `bson:"quote" json:"quote"`
	Rating       int       `bson:"rating" json:"rating"` // 1..5
	IsVisible    bool      `bson:"is_visible" json:"is_visible"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// BlogPost is a marketing article.
type BlogPost struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Slug        string     `bson:"slug" json:"slug"`
	Body        string     `bson:"body" json:"body"`
	CoverURL    string     `bson:"cover_url" json:"cover_url"`
	IsPublished bool       `bson:"is_published" json:"is_published"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// ContactMessage captures chat-widget fallback input and contact-form posts.
type ContactMessage struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Message   string    `bson:"message" json:"message"`
	Source    string    `bson:"source" json:"source"` // "chat" or "contact_form"
	IsRead    bool      `bson:"is_read" json:"is_read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
