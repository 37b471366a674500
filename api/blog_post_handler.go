package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skillwave-academy/content-service/errs"
	"github.com/skillwave-academy/content-service/indexes"
	"github.com/skillwave-academy/content-service/kv"
	"github.com/skillwave-academy/content-service/models"
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     kv.Store
	indexes   *indexes.Manager
	validate  *validator.Validate
}

func newBlogPostHandler(store kv.Store, idx *indexes.Manager, validate *validator.Validate) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		indexes:   idx,
		validate:  validate,
	}
}

// createBlogPost builds a post from the payload, denormalizing the caller's
// identity into the author fields, and registers it in the global, author
// and category indexes.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to create blog posts"))
			return
		}

		var req models.CreateBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("title and content are required"))
			return
		}

		if req.MediaType == "" {
			req.MediaType = models.MediaTypeArticle
		}
		if req.Category == "" {
			req.Category = "General"
		}

		authorName := req.AuthorName
		if authorName == "" {
			authorName = identity.DisplayNameOr("Instructor")
		}
		authorAvatar := req.AuthorAvatar
		if authorAvatar == "" {
			authorAvatar = identity.Avatar
		}

		now := time.Now().UTC()
		post := models.BlogPost{
			ID:           uuid.New().String(),
			Title:        req.Title,
			Content:      req.Content,
			Excerpt:      req.Excerpt,
			AuthorID:     identity.ID,
			AuthorName:   authorName,
			AuthorAvatar: authorAvatar,
			MediaType:    req.MediaType,
			MediaURL:     req.MediaURL,
			ThumbnailURL: req.ThumbnailURL,
			Category:     req.Category,
			Views:        0,
			Published:    req.Published,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx := r.Context()
		if err := h.store.Set(ctx, models.BlogPostKey(post.ID), post); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store blog post", err))
			return
		}

		for _, indexKey := range []string{
			models.AllPostsKey,
			models.AuthorPostsKey(post.AuthorID),
			models.CategoryPostsKey(post.Category),
		} {
			if err := h.indexes.Add(ctx, indexKey, post.ID); err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to index blog post", err))
				return
			}
		}

		h.responder.WriteJSON(w, blogPostResponse{
			Success: true,
			Data:    &post,
			Message: "Blog post created successfully",
		})
	}
}

// getAllBlogPosts lists posts through one index: the author index when
// author_id is given, else the category index unless the category is the
// "All" sentinel, else the global index. Unpublished posts are dropped
// unless published=false is passed.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		authorID := r.URL.Query().Get("author_id")
		publishedOnly := r.URL.Query().Get("published") != "false"

		var indexKey string
		switch {
		case authorID != "":
			indexKey = models.AuthorPostsKey(authorID)
		case category != "" && category != models.CategoryAll:
			indexKey = models.CategoryPostsKey(category)
		default:
			indexKey = models.AllPostsKey
		}

		ctx := r.Context()
		postIDs, err := h.indexes.Get(ctx, indexKey)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load post index", err))
			return
		}

		posts := make([]models.BlogPost, 0, len(postIDs))
		for _, postID := range postIDs {
			var post models.BlogPost
			found, err := h.store.Get(ctx, models.BlogPostKey(postID), &post)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to load blog post", err))
				return
			}
			// stale index entries are skipped, never surfaced
			if !found {
				continue
			}
			if publishedOnly && !post.Published {
				continue
			}
			posts = append(posts, post)
		}

		sort.Slice(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})

		h.responder.WriteJSON(w, blogPostListResponse{
			Success: true,
			Data:    posts,
			Total:   len(posts),
		})
	}
}

// getBlogPost reads one post. Every read bumps the persisted view counter;
// this is the documented contract, not an accident.
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "id")

		ctx := r.Context()
		var post models.BlogPost
		found, err := h.store.Get(ctx, models.BlogPostKey(postID), &post)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load blog post", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		post.Views++
		if err := h.store.Set(ctx, models.BlogPostKey(postID), post); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to update view count", err))
			return
		}

		h.responder.WriteJSON(w, blogPostResponse{
			Success: true,
			Data:    &post,
		})
	}
}

// updateBlogPost merges the provided fields over the stored post. Only the
// author may update; a category change moves the post between category
// indexes.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to update blog posts"))
			return
		}

		postID := chi.URLParam(r, "id")

		ctx := r.Context()
		var post models.BlogPost
		found, err := h.store.Get(ctx, models.BlogPostKey(postID), &post)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load blog post", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if post.AuthorID != identity.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only edit your own posts"))
			return
		}

		var req models.UpdateBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post update body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		oldCategory := post.Category

		if req.Title != nil && *req.Title != "" {
			post.Title = *req.Title
		}
		if req.Content != nil && *req.Content != "" {
			post.Content = *req.Content
		}
		if req.MediaType != nil && *req.MediaType != "" {
			post.MediaType = *req.MediaType
		}
		if req.Category != nil && *req.Category != "" {
			post.Category = *req.Category
		}
		// these three may be cleared to empty
		if req.Excerpt != nil {
			post.Excerpt = *req.Excerpt
		}
		if req.MediaURL != nil {
			post.MediaURL = *req.MediaURL
		}
		if req.ThumbnailURL != nil {
			post.ThumbnailURL = *req.ThumbnailURL
		}
		if req.Published != nil {
			post.Published = *req.Published
		}
		post.UpdatedAt = time.Now().UTC()

		if err := h.store.Set(ctx, models.BlogPostKey(postID), post); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store blog post", err))
			return
		}

		if post.Category != oldCategory {
			err := h.indexes.Move(ctx,
				models.CategoryPostsKey(oldCategory),
				models.CategoryPostsKey(post.Category),
				postID,
			)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to move category index", err))
				return
			}
		}

		h.responder.WriteJSON(w, blogPostResponse{
			Success: true,
			Data:    &post,
			Message: "Blog post updated successfully",
		})
	}
}

// deleteBlogPost removes the post and its membership in all three indexes.
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to delete blog posts"))
			return
		}

		postID := chi.URLParam(r, "id")

		ctx := r.Context()
		var post models.BlogPost
		found, err := h.store.Get(ctx, models.BlogPostKey(postID), &post)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load blog post", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if post.AuthorID != identity.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only delete your own posts"))
			return
		}

		if err := h.store.Delete(ctx, models.BlogPostKey(postID)); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to delete blog post", err))
			return
		}

		for _, indexKey := range []string{
			models.AllPostsKey,
			models.AuthorPostsKey(post.AuthorID),
			models.CategoryPostsKey(post.Category),
		} {
			if err := h.indexes.Remove(ctx, indexKey, postID); err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to unindex blog post", err))
				return
			}
		}

		h.responder.WriteJSON(w, messageResponse{
			Success: true,
			Message: "Blog post deleted successfully",
		})
	}
}
