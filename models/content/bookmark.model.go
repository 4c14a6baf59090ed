package content

import "gorm.io/gorm"

// Bookmark target types
const (
	TargetArticle = "ARTICLE"
	TargetEbook   = "EBOOK"
	TargetCourse  = "COURSE"
)

// Bookmark marks a piece of content as saved by a user. Toggling an
// existing bookmark removes it.
type Bookmark struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	TargetType string `json:"target_type" gorm:"not null"` // ARTICLE, EBOOK, COURSE
	TargetID   uint   `json:"target_id" gorm:"index;not null"`
	IsDeleted  bool   `gorm:"default:false"`
}
