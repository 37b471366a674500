package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skillwave-academy/content-service/errs"
	"github.com/skillwave-academy/content-service/indexes"
	"github.com/skillwave-academy/content-service/kv"
	"github.com/skillwave-academy/content-service/models"
)

type certificateHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     kv.Store
	indexes   *indexes.Manager
	validate  *validator.Validate
}

func newCertificateHandler(store kv.Store, idx *indexes.Manager, validate *validator.Validate) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		indexes:   idx,
		validate:  validate,
	}
}

// generateCertificate issues a completion certificate for the caller.
// Calling it twice for the same course issues two certificates; nothing
// dedupes on (user, course) today.
func (h certificateHandler) generateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to generate certificates"))
			return
		}

		var req models.GenerateCertificateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode certificate request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing required fields: courseId, courseName"))
			return
		}

		now := time.Now().UTC()
		completionDate := req.CompletionDate
		if completionDate == "" {
			completionDate = now.Format(time.RFC3339)
		}

		certificate := models.Certificate{
			ID:                uuid.New().String(),
			UserID:            identity.ID,
			CourseID:          req.CourseID,
			CourseName:        req.CourseName,
			StudentName:       identity.DisplayNameOr("Student"),
			CompletionDate:    completionDate,
			GeneratedAt:       now,
			CertificateNumber: models.CertificateNumber(req.CourseID, now),
		}

		ctx := r.Context()
		if err := h.store.Set(ctx, models.CertificateKey(certificate.ID), certificate); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store certificate", err))
			return
		}

		if err := h.indexes.Add(ctx, models.UserCertificatesKey(identity.ID), certificate.ID); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to index certificate", err))
			return
		}

		h.responder.WriteJSON(w, certificateResponse{
			Success:     true,
			Certificate: &certificate,
			Message:     "Certificate generated successfully",
		})
	}
}

// getCertificates lists the caller's certificates, newest first.
func (h certificateHandler) getCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("please login to view certificates"))
			return
		}

		ctx := r.Context()
		certificateIDs, err := h.indexes.Get(ctx, models.UserCertificatesKey(identity.ID))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to load certificate index", err))
			return
		}

		certificates := make([]models.Certificate, 0, len(certificateIDs))
		for _, certificateID := range certificateIDs {
			var certificate models.Certificate
			found, err := h.store.Get(ctx, models.CertificateKey(certificateID), &certificate)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to load certificate", err))
				return
			}
			if !found {
				continue
			}
			certificates = append(certificates, certificate)
		}

		sort.Slice(certificates, func(i, j int) bool {
			return certificates[i].GeneratedAt.After(certificates[j].GeneratedAt)
		})

		h.responder.WriteJSON(w, certificateListResponse{
			Success:      true,
			Certificates: certificates,
			Total:        len(certificates),
		})
	}
}
