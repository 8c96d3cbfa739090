package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ImAlagar/zohra-admin-core/api/controllers"
	"github.com/ImAlagar/zohra-admin-core/api/middleware"
	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
	"github.com/ImAlagar/zohra-admin-core/internal/moderation"
	"github.com/ImAlagar/zohra-admin-core/internal/pricing"
	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
	"github.com/ImAlagar/zohra-admin-core/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	store *pricing.Store,
	editor *pricing.Editor,
	catalogService *catalog.Service,
	moderationService *moderation.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// A typed-nil *redis.Client must read as "no dependency" in the probe.
	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger))
	})
	// Single probe path for platforms that only take one URL.
	r.Get("/healthz", controllers.HealthLive(cfg))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/admin", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Get("/overview", controllers.PricingOverview(store, logg))

			r.Route("/rules/{ruleId}", func(r chi.Router) {
				r.Get("/", controllers.PricingRuleFetch(store, logg))
				r.Put("/", controllers.PricingRuleUpdate(store, logg))
				r.Delete("/", controllers.PricingRuleDelete(editor, logg))
				r.Patch("/status", controllers.PricingRuleStatus(editor, logg))

				r.Route("/draft", func(r chi.Router) {
					r.Post("/", controllers.PricingDraftBegin(store, editor, logg))
					r.Put("/", controllers.PricingDraftUpdate(editor, logg, controllers.RuleDraftKey))
					r.Delete("/", controllers.PricingDraftCancel(editor, logg, controllers.RuleDraftKey))
					r.Post("/submit", controllers.PricingDraftSubmit(editor, logg, controllers.RuleDraftKey))
				})
			})
		})

		r.Route("/subcategories/{subcategoryId}/rules", func(r chi.Router) {
			r.Post("/", controllers.PricingRuleCreate(store, logg))

			r.Route("/draft", func(r chi.Router) {
				r.Post("/", controllers.PricingDraftBeginAdd(editor, logg))
				r.Put("/", controllers.PricingDraftUpdate(editor, logg, controllers.AddDraftKey))
				r.Delete("/", controllers.PricingDraftCancel(editor, logg, controllers.AddDraftKey))
				r.Post("/submit", controllers.PricingDraftSubmit(editor, logg, controllers.AddDraftKey))
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
			r.Get("/subcategories", controllers.CatalogSubcategories(catalogService, logg))
			r.Get("/subcategories/{subcategoryId}", controllers.CatalogSubcategoryFetch(catalogService, logg))
		})

		r.Route("/moderation", func(r chi.Router) {
			r.Get("/contacts", controllers.ModerationContacts(moderationService, logg))
			r.Patch("/contacts/{contactId}/status", controllers.ModerationContactStatus(moderationService, logg))
			r.Delete("/contacts/{contactId}", controllers.ModerationContactDelete(moderationService, logg))

			r.Get("/ratings", controllers.ModerationRatings(moderationService, logg))
			r.Patch("/ratings/{ratingId}/status", controllers.ModerationRatingStatus(moderationService, logg))
			r.Delete("/ratings/{ratingId}", controllers.ModerationRatingDelete(moderationService, logg))
		})
	})

	return r
}
