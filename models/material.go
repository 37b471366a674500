package models

import (
	"fmt"
	"time"
)

// Material categories used by the course UI. The field is stored as free-form
// text; these are the values clients send today.
const (
	MaterialCategoryNotes     = "notes"
	MaterialCategoryQuizzes   = "quizzes"
	MaterialCategoryVideos    = "videos"
	MaterialCategoryDocuments = "documents"
)

// Material is the metadata record for an uploaded course file, stored under
// MaterialKey(id). Path is the object key inside the course-materials bucket;
// URL is the signed URL issued at upload time and is only a fallback — list
// and read re-sign a fresh one without persisting it.
type Material struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	CourseID     string    `json:"courseId"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
	URL          string    `json:"url"`
	Path         string    `json:"path"`
}

func MaterialKey(id string) string {
	return "material:" + id
}

// CourseMaterialsKey indexes every material of a course.
func CourseMaterialsKey(courseID string) string {
	return fmt.Sprintf("course:%s:materials", courseID)
}

// CourseCategoryKey indexes the materials of one category within a course.
func CourseCategoryKey(courseID, category string) string {
	return fmt.Sprintf("course:%s:%s", courseID, category)
}
