package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ImAlagar/zohra-admin-core/api/responses"
	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

func CatalogCategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		categories, err := svc.Categories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CatalogSubcategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subcategories, err := svc.Subcategories(ctx, r.URL.Query().Get("category_id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, subcategories)
	}
}

func CatalogSubcategoryFetch(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subcategory, err := svc.Subcategory(ctx, chi.URLParam(r, "subcategoryId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, subcategory)
	}
}
