package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson types
const (
	LessonVideo   = "VIDEO"
	LessonArticle = "ARTICLE"
	LessonQuiz    = "QUIZ"
)

// Lesson represents a single lesson within a module
type Lesson struct {
	gorm.Model
	ModuleID        uint           `json:"module_id" gorm:"index;not null"`
	CourseID        uint           `json:"course_id" gorm:"index;not null"` // denormalized for per-course progress counts
	Title           string         `json:"title"`
	Type            string         `json:"type" gorm:"default:'VIDEO'"` // VIDEO, ARTICLE, QUIZ
	DurationMinutes *int           `json:"duration_minutes"`            // nil when unknown, treated as 0 in totals
	IsFree          bool           `json:"is_free" gorm:"default:false"`
	OrderIndex      int            `json:"order_index" gorm:"default:0"`
	VideoURL        string         `json:"video_url"`                       // for VIDEO type
	Body            string         `json:"body" gorm:"type:text"`           // for ARTICLE type
	QuizData        datatypes.JSON `json:"quiz_data" gorm:"type:jsonb"`     // for QUIZ type
	IsPublished     bool           `json:"is_published" gorm:"default:true"`
	IsDeleted       bool           `gorm:"default:false"`
}
