package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skillwave-academy/content-service/errs"
	"github.com/skillwave-academy/content-service/indexes"
	"github.com/skillwave-academy/content-service/kv"
	"github.com/skillwave-academy/content-service/models"
	"github.com/skillwave-academy/content-service/storage"
)

// multipart form parse buffer; larger files spill to disk
const maxUploadMemory = 32 << 20

type materialHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     kv.Store
	indexes   *indexes.Manager
	gateway   storage.Gateway
	bucket    string
}

func newMaterialHandler(store kv.Store, idx *indexes.Manager, gateway storage.Gateway, bucket string) materialHandler {
	logger := log.With().Str("handlerName", "materialHandler").Logger()

	return materialHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		indexes:   idx,
		gateway:   gateway,
		bucket:    bucket,
	}
}

// uploadMaterial pushes the file into the course-materials bucket and
// records its metadata under both the course-wide and the course+category
// index. The returned entity carries a long-lived signed URL; listings
// re-sign a fresh one on every request.
func (h materialHandler) uploadMaterial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to upload materials"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing required fields: file, title, category, courseId"))
			return
		}
		defer file.Close()

		title := r.FormValue("title")
		description := r.FormValue("description")
		category := r.FormValue("category")
		courseID := r.FormValue("courseId")

		if title == "" || category == "" || courseID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing required fields: file, title, category, courseId"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		now := time.Now().UTC()
		objectKey := storage.MaterialObjectKey(courseID, category, header.Filename, now)

		ctx := r.Context()
		if err := h.gateway.Upload(ctx, h.bucket, objectKey, file, contentType, header.Size); err != nil {
			if errors.Is(err, storage.ErrContentTypeNotAllowed) || errors.Is(err, storage.ErrObjectTooLarge) {
				h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
				return
			}
			h.responder.WriteError(w, errs.NewUploadFailedError("failed to upload file to storage", err))
			return
		}

		// long-lived fallback URL; a signing failure is not worth failing
		// the upload over
		signedURL, err := h.gateway.SignedURL(ctx, h.bucket, objectKey, storage.UploadURLTTL)
		if err != nil {
			h.logger.Warn().Err(err).Str("path", objectKey).Msg("Failed to sign upload URL")
		}

		material := models.Material{
			ID:           uuid.New().String(),
			Title:        title,
			Description:  description,
			Category:     category,
			CourseID:     courseID,
			FileName:     objectKey,
			OriginalName: header.Filename,
			FileType:     contentType,
			FileSize:     header.Size,
			UploadedBy:   identity.ID,
			UploadedAt:   now,
			URL:          signedURL,
			Path:         objectKey,
		}

		if err := h.store.Set(ctx, models.MaterialKey(material.ID), material); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store material metadata", err))
			return
		}

		for _, indexKey := range []string{
			models.CourseMaterialsKey(courseID),
			models.CourseCategoryKey(courseID, category),
		} {
			if err := h.indexes.Add(ctx, indexKey, material.ID); err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to index material", err))
				return
			}
		}

		h.responder.WriteJSON(w, materialResponse{
			Success:  true,
			Material: &material,
			Message:  "Course material uploaded successfully",
		})
	}
}

// getCourseMaterials lists a course's materials, optionally narrowed to one
// category, re-signing a fresh short-lived URL per item. When signing fails
// the stored long-lived URL is the fallback.
func (h materialHandler) getCourseMaterials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFromCtx(r.Context()); !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to view materials"))
			return
		}

		courseID := chi.URLParam(r, "courseID")
		category := r.URL.Query().Get("category")

		indexKey := models.CourseMaterialsKey(courseID)
		if category != "" {
			indexKey = models.CourseCategoryKey(courseID, category)
		}

		ctx := r.Context()
		materialIDs, err := h.indexes.Get(ctx, indexKey)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load material index", err))
			return
		}

		materials := make([]models.Material, 0, len(materialIDs))
		for _, materialID := range materialIDs {
			var material models.Material
			found, err := h.store.Get(ctx, models.MaterialKey(materialID), &material)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to load material", err))
				return
			}
			if !found {
				continue
			}

			freshURL, err := h.gateway.SignedURL(ctx, h.bucket, material.Path, storage.ReadURLTTL)
			if err != nil {
				h.logger.Warn().Err(err).Str("path", material.Path).Msg("Failed to re-sign material URL")
			} else {
				material.URL = freshURL
			}

			materials = append(materials, material)
		}

		sort.Slice(materials, func(i, j int) bool {
			return materials[i].UploadedAt.After(materials[j].UploadedAt)
		})

		h.responder.WriteJSON(w, materialListResponse{
			Success:   true,
			Materials: materials,
			Total:     len(materials),
		})
	}
}

// deleteMaterial removes the metadata record, both index memberships and,
// best effort, the backing object.
func (h materialHandler) deleteMaterial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to delete materials"))
			return
		}

		materialID := chi.URLParam(r, "materialID")

		ctx := r.Context()
		var material models.Material
		found, err := h.store.Get(ctx, models.MaterialKey(materialID), &material)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load material", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("material not found"))
			return
		}
		if material.UploadedBy != identity.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only delete your own materials"))
			return
		}

		// the metadata record is authoritative; an orphaned object is
		// acceptable, a dangling record is not
		if err := h.gateway.Remove(ctx, h.bucket, material.Path); err != nil {
			h.logger.Error().Err(err).Str("path", material.Path).Msg("Failed to delete backing object")
		}

		if err := h.store.Delete(ctx, models.MaterialKey(materialID)); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to delete material", err))
			return
		}

		for _, indexKey := range []string{
			models.CourseMaterialsKey(material.CourseID),
			models.CourseCategoryKey(material.CourseID, material.Category),
		} {
			if err := h.indexes.Remove(ctx, indexKey, materialID); err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to unindex material", err))
				return
			}
		}

		h.responder.WriteJSON(w, messageResponse{
			Success: true,
			Message: "Course material deleted successfully",
		})
	}
}
