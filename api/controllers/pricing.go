package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ImAlagar/zohra-admin-core/api/responses"
	"github.com/ImAlagar/zohra-admin-core/api/validators"
	"github.com/ImAlagar/zohra-admin-core/internal/pricing"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

const maxFilterLen = 120

// ruleWriteRequest is the admin-facing rule body. Quantity and value are
// deliberately not required here; the rule validator reports their absence
// with precise codes instead of a generic body failure.
type ruleWriteRequest struct {
	Quantity  *float64         `json:"quantity"`
	PriceType string           `json:"price_type" validate:"required"`
	Value     *decimal.Decimal `json:"value"`
}

func (req ruleWriteRequest) toPayload() (pricing.RulePayload, error) {
	priceType, err := pricing.ParsePriceType(req.PriceType)
	if err != nil {
		return pricing.RulePayload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown price type").
			WithDetails(map[string]any{"field": "price_type"})
	}
	return pricing.RulePayload{
		Quantity:  req.Quantity,
		PriceType: priceType,
		Value:     req.Value,
	}, nil
}

type ruleStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// PricingOverview serves the dashboard: stats over the full rule set plus
// groups narrowed by the optional ?q= filter. ?width= picks the layout hint.
func PricingOverview(store *pricing.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		width, err := validators.ParseQueryInt(r, "width", 0, 0, 10000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		groups, err := store.ListAllGrouped(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := validators.SanitizeString(r.URL.Query().Get("q"), maxFilterLen)
		overview := pricing.BuildOverview(groups, filter)

		payload := map[string]any{
			"stats":  overview.Stats,
			"groups": overview.Groups,
		}
		if overview.Filter != "" {
			payload["filter"] = overview.Filter
		}
		if width > 0 {
			payload["layout"] = pricing.LayoutFor(width)
		}
		responses.WriteSuccess(w, payload)
	}
}

func PricingRuleFetch(store *pricing.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ruleID := chi.URLParam(r, "ruleId")
		if logg != nil {
			ctx = logg.WithRuleID(ctx, ruleID)
		}

		detail, err := store.GetRule(ctx, ruleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func PricingRuleCreate(store *pricing.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subcategoryID := chi.URLParam(r, "subcategoryId")
		if logg != nil {
			ctx = logg.WithSubcategoryID(ctx, subcategoryID)
		}

		var req ruleWriteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		payload, err := req.toPayload()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := store.Create(ctx, subcategoryID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func PricingRuleUpdate(store *pricing.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ruleID := chi.URLParam(r, "ruleId")
		if logg != nil {
			ctx = logg.WithRuleID(ctx, ruleID)
		}

		var req ruleWriteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		payload, err := req.toPayload()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := store.Update(ctx, ruleID, payload, nil)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func PricingRuleDelete(editor *pricing.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ruleID := chi.URLParam(r, "ruleId")
		if logg != nil {
			ctx = logg.WithRuleID(ctx, ruleID)
		}

		if err := editor.Delete(ctx, ruleID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func PricingRuleStatus(editor *pricing.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ruleID := chi.URLParam(r, "ruleId")
		if logg != nil {
			ctx = logg.WithRuleID(ctx, ruleID)
		}

		var req ruleStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		toggled, err := editor.ToggleActive(ctx, ruleID, *req.IsActive)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toggled)
	}
}

// PricingDraftBegin opens an editing session seeded from the rule's current
// values.
func PricingDraftBegin(store *pricing.Store, editor *pricing.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ruleID := chi.URLParam(r, "ruleId")
		if logg != nil {
			ctx = logg.WithRuleID(ctx, ruleID)
		}

		rule, err := store.RuleByID(ctx, ruleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, editor.Begin(*rule))
	}
}

// PricingDraftBeginAdd opens the blank add-new row for a subcategory.
func PricingDraftBeginAdd(editor *pricing.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subcategoryID := chi.URLParam(r, "subcategoryId")
		responses.WriteSuccess(w, editor.BeginAdd(subcategoryID))
	}
}

func PricingDraftUpdate(editor *pricing.Editor, logg *logger.Logger, keyFn func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := keyFn(r)

		var req ruleWriteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		payload, err := req.toPayload()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := editor.UpdateDraft(key, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func PricingDraftCancel(editor *pricing.Editor, logg *logger.Logger, keyFn func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := editor.Cancel(keyFn(r)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

func PricingDraftSubmit(editor *pricing.Editor, logg *logger.Logger, keyFn func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		saved, err := editor.Submit(ctx, keyFn(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

// RuleDraftKey resolves the session key for an existing rule's draft routes.
func RuleDraftKey(r *http.Request) string {
	return chi.URLParam(r, "ruleId")
}

// AddDraftKey resolves the session key for a subcategory's add-new routes.
func AddDraftKey(r *http.Request) string {
	return pricing.NewRowKey(chi.URLParam(r, "subcategoryId"))
}
