package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemStatus string

const (
	StatusDraft     ItemStatus = "draft"
	StatusPublished ItemStatus = "published"
)

// Item is one row of a content collection. Column values are not carried
// here; they are pulled lazily from the attribute store at render time.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	ContentType string     `json:"content_type"`
	Title       string     `json:"title"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FeaturedImageKey is the attribute under which an item stores the attachment
// id of its featured image.
const FeaturedImageKey = "featured_image"
