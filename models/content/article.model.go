package content

import (
	"time"

	"gorm.io/gorm"
)

// Article statuses
const (
	ArticleDraft     = "DRAFT"
	ArticleScheduled = "SCHEDULED"
	ArticlePublished = "PUBLISHED"
)

// Article represents a published piece of writing on the platform
type Article struct {
	gorm.Model
	Title       string     `json:"title"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body" gorm:"type:text"`
	CoverURL    string     `json:"cover_url"`
	AuthorID    uint       `json:"author_id" gorm:"index"`
	Status      string     `json:"status" gorm:"default:'DRAFT'"` // DRAFT, SCHEDULED, PUBLISHED
	PublishAt   *time.Time `json:"publish_at"`                    // set when scheduled
	PublishedAt *time.Time `json:"published_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
