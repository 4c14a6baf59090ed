package forum

import "gorm.io/gorm"

// Question is a user-submitted question for the Q&A forum. Questions may
// optionally reference a course they arose from.
type Question struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	CourseID   *uint  `json:"course_id" gorm:"index"`
	Title      string `json:"title"`
	Body       string `json:"body" gorm:"type:text"`
	IsAnswered bool   `json:"is_answered" gorm:"default:false"`
	IsPublic   bool   `json:"is_public" gorm:"default:true"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Answer is a response to a forum question, written by an admin/scholar.
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	UserID     uint   `json:"user_id" gorm:"index;not null"` // answering admin
	Body       string `json:"body" gorm:"type:text"`
	IsDeleted  bool   `gorm:"default:false"`
}
