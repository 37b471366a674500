package models

import (
	"fmt"
	"time"
)

// Certificate records a course completion for one user. Certificates are
// immutable once created; there is no update or delete operation.
type Certificate struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	CourseID          string    `json:"courseId"`
	CourseName        string    `json:"courseName"`
	StudentName       string    `json:"studentName"`
	CompletionDate    string    `json:"completionDate"`
	GeneratedAt       time.Time `json:"generatedAt"`
	CertificateNumber string    `json:"certificateNumber"`
}

// GenerateCertificateRequest is the POST /generate-certificate payload.
type GenerateCertificateRequest struct {
	CourseID       string `json:"courseId" validate:"required"`
	CourseName     string `json:"courseName" validate:"required"`
	CompletionDate string `json:"completionDate"`
}

func CertificateKey(id string) string {
	return "certificate:" + id
}

func UserCertificatesKey(userID string) string {
	return fmt.Sprintf("user:%s:certificates", userID)
}

// CertificateNumber derives the human-readable number printed on the
// certificate. It embeds the issue time in milliseconds and is not checked
// for uniqueness, so two issuances for the same course within the same
// millisecond could collide.
func CertificateNumber(courseID string, at time.Time) string {
	return fmt.Sprintf("SW-%s-%d", courseID, at.UnixMilli())
}
