package content

import "gorm.io/gorm"

// Ebook represents a downloadable book in the library
type Ebook struct {
	gorm.Model
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Author      string `json:"author"`
	Description string `json:"description" gorm:"type:text"`
	Language    string `json:"language" gorm:"default:'ur'"`
	Pages       int    `json:"pages" gorm:"default:0"`
	FileURL     string `json:"file_url"`
	CoverURL    string `json:"cover_url"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
