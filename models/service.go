package models

import "time"

// Service represents one entry in the services catalog.
type Service struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	Price        *float64  `bson:"price" json:"price"` // nil = price on request
	IsActive     bool      `bson:"is_active" json:"is_active"`
	IsVisible    bool      `bson:"is_visible" json:"is_visible"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
