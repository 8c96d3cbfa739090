package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ImAlagar/zohra-admin-core/api/responses"
	"github.com/ImAlagar/zohra-admin-core/api/validators"
	"github.com/ImAlagar/zohra-admin-core/internal/moderation"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

type contactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING RESOLVED"`
}

type ratingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED"`
}

func ModerationContacts(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		contacts, err := svc.Contacts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, contacts)
	}
}

func ModerationContactStatus(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		contactID := chi.URLParam(r, "contactId")

		var req contactStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var err error
		switch moderation.ContactStatus(req.Status) {
		case moderation.ContactStatusResolved:
			err = svc.ResolveContact(ctx, contactID)
		case moderation.ContactStatusPending:
			err = svc.ReopenContact(ctx, contactID)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "unknown contact status")
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": req.Status})
	}
}

func ModerationContactDelete(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteContact(ctx, chi.URLParam(r, "contactId")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ModerationRatings(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ratings, err := svc.Ratings(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, ratings)
	}
}

func ModerationRatingStatus(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ratingID := chi.URLParam(r, "ratingId")

		var req ratingStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var err error
		switch moderation.RatingStatus(req.Status) {
		case moderation.RatingStatusApproved:
			err = svc.ApproveRating(ctx, ratingID)
		case moderation.RatingStatusPending:
			err = svc.HoldRating(ctx, ratingID)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "unknown rating status")
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": req.Status})
	}
}

func ModerationRatingDelete(svc *moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteRating(ctx, chi.URLParam(r, "ratingId")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
