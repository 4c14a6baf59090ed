package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Slug         string `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Level        string `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration     string `json:"duration"`                        // display string, e.g. "6 weeks"
	Status       string `json:"status" gorm:"default:'DRAFT'"`   // DRAFT, PUBLISHED
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
