// Package storage is the object-storage gateway: it provisions the
// service's buckets and moves binary objects in and out of them, issuing
// time-limited signed URLs for reads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Signed URL lifetimes. Uploads record a long-lived URL as a stored
// fallback; every list or read re-signs a fresh short-lived one.
const (
	UploadURLTTL = 365 * 24 * time.Hour
	ReadURLTTL   = 24 * time.Hour
)

var (
	ErrBucketUnknown         = errors.New("bucket not declared")
	ErrContentTypeNotAllowed = errors.New("content type not allowed for bucket")
	ErrObjectTooLarge        = errors.New("object exceeds bucket size limit")
	ErrObjectNotFound        = errors.New("object not found")
)

// Gateway is the capability handlers use to store uploaded files.
type Gateway interface {
	// EnsureBuckets provisions every declared bucket that does not exist
	// yet. Best effort: individual failures are logged, not returned, so a
	// flaky bootstrap never prevents the service from starting.
	EnsureBuckets(ctx context.Context)
	// Upload stores the object, enforcing the bucket's MIME and size policy.
	Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string, size int64) error
	// SignedURL issues a time-limited URL for reading the object.
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	// Remove deletes the object.
	Remove(ctx context.Context, bucket, key string) error
}

// BucketPolicy declares one bucket and the uploads it accepts.
type BucketPolicy struct {
	Name             string
	Public           bool
	AllowedMimeTypes []string
	FileSizeLimit    int64
}

// Allows checks an upload against the policy.
func (p BucketPolicy) Allows(contentType string, size int64) error {
	if size > p.FileSizeLimit {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrObjectTooLarge, size, p.FileSizeLimit)
	}
	for _, allowed := range p.AllowedMimeTypes {
		if allowed == contentType {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrContentTypeNotAllowed, contentType)
}

// Buckets holds the resolved bucket names for one deployment prefix.
type Buckets struct {
	CourseMaterials string
	BlogThumbnails  string
	BlogImages      string
	BlogVideos      string
}

// DeclareBuckets returns the bucket policies for a deployment prefix,
// matching the MIME allow-lists and size limits the frontend relies on.
func DeclareBuckets(prefix string) []BucketPolicy {
	return []BucketPolicy{
		{
			Name:   prefix + "-course-materials",
			Public: false,
			AllowedMimeTypes: []string{
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"video/mp4",
				"video/webm",
				"image/jpeg",
				"image/png",
				"image/webp",
				"text/plain",
			},
			FileSizeLimit: 100 * 1024 * 1024,
		},
		{
			Name:             prefix + "-blog-thumbnails",
			Public:           true,
			AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
			FileSizeLimit:    5 * 1024 * 1024,
		},
		{
			Name:             prefix + "-blog-images",
			Public:           true,
			AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
			FileSizeLimit:    10 * 1024 * 1024,
		},
		{
			Name:             prefix + "-blog-videos",
			Public:           true,
			AllowedMimeTypes: []string{"video/mp4", "video/webm", "video/quicktime"},
			FileSizeLimit:    200 * 1024 * 1024,
		},
	}
}

// BucketsFor resolves the named buckets out of a declared policy set.
func BucketsFor(prefix string) Buckets {
	return Buckets{
		CourseMaterials: prefix + "-course-materials",
		BlogThumbnails:  prefix + "-blog-thumbnails",
		BlogImages:      prefix + "-blog-images",
		BlogVideos:      prefix + "-blog-videos",
	}
}

// MaterialObjectKey builds the object key for an uploaded course material:
// {courseId}/{category}/{millis}-{random}.{ext}. The millisecond timestamp
// plus random id makes collisions across uploads impossible without any
// coordination.
func MaterialObjectKey(courseID, category, originalName string, now time.Time) string {
	key := fmt.Sprintf("%s/%s/%d-%s", courseID, category, now.UnixMilli(), uuid.New())
	if ext := filepath.Ext(originalName); ext != "" {
		key += ext
	}
	return key
}
