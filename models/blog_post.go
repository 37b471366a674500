package models

import (
	"fmt"
	"time"
)

// Media types a blog post can carry.
const (
	MediaTypeArticle = "article"
	MediaTypeVideo   = "video"
	MediaTypeImage   = "image"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// BlogPost is the authoritative record stored under BlogPostKey(id). Author
// fields are denormalized at write time and never re-derived.
type BlogPost struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	MediaType    string    `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Category     string    `json:"category"`
	Views        int       `json:"views"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateBlogPostRequest is the POST /blog-posts payload. Everything except
// title and content is optional and falls back to a default at create time.
type CreateBlogPostRequest struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	Excerpt      string `json:"excerpt"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category"`
	Published    bool   `json:"published"`
}

// UpdateBlogPostRequest is the PUT /blog-posts/{id} payload. A nil pointer
// leaves the field unchanged. Excerpt, media_url and thumbnail_url may be
// cleared by sending an empty string; the other string fields ignore empty
// values so a sparse client payload cannot blank them out.
type UpdateBlogPostRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	Excerpt      *string `json:"excerpt"`
	MediaType    *string `json:"media_type"`
	MediaURL     *string `json:"media_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Category     *string `json:"category"`
	Published    *bool   `json:"published"`
}

// Key layout for blog posts and their indexes.

func BlogPostKey(id string) string {
	return "blog:post:" + id
}

const AllPostsKey = "blog:all_posts"

func AuthorPostsKey(authorID string) string {
	return fmt.Sprintf("blog:author:%s:posts", authorID)
}

func CategoryPostsKey(category string) string {
	return fmt.Sprintf("blog:category:%s:posts", category)
}
