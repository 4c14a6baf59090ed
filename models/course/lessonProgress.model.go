package course

import "gorm.io/gorm"

// LessonProgress tracks a user's completion state for a single lesson.
// Rows are created lazily on the first progress update; a missing row
// means "not started". Concurrent toggles resolve last-write-wins.
type LessonProgress struct {
	gorm.Model
	UserID          uint `json:"user_id" gorm:"index;not null"`
	LessonID        uint `json:"lesson_id" gorm:"index;not null"`
	CourseID        uint `json:"course_id" gorm:"index;not null"`
	IsCompleted     bool `json:"is_completed" gorm:"default:false"`
	WatchedDuration int  `json:"watched_duration" gorm:"default:0"` // seconds
	LastPosition    int  `json:"last_position" gorm:"default:0"`    // seconds
	IsDeleted       bool `gorm:"default:false"`
}
