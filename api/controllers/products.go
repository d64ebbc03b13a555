package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/api/responses"
	"github.com/bhumi-studio/bhumi-backend/api/validators"
	"github.com/bhumi-studio/bhumi-backend/internal/catalog"
	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// ProductList serves the storefront catalog with optional filters.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters := catalog.ListFilters{}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			filters.Category = &category
		}

		newArrivals, err := validators.ParseQueryBool(r, "new_arrivals", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.NewArrivals = newArrivals

		bestSellers, err := validators.ParseQueryBool(r, "best_sellers", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.BestSellers = bestSellers

		products, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(products))
	}
}

// ProductDetail serves a single listing. Inactive products read as missing
// for storefront callers.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !product.IsActive {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

type productResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Material           string           `json:"material"`
	Category           string           `json:"category"`
	Subcategory        string           `json:"subcategory"`
	PriceMinor         int              `json:"price_minor"`
	OriginalPriceMinor *int             `json:"original_price_minor,omitempty"`
	ImageURL           string           `json:"image_url"`
	Images             types.StringList `json:"images"`
	Sizes              types.StringList `json:"sizes"`
	Colors             types.ColorList  `json:"colors"`
	IsNew              bool             `json:"is_new"`
	IsBestSeller       bool             `json:"is_best_seller"`
	IsActive           bool             `json:"is_active"`
	Rating             float64          `json:"rating"`
	ReviewCount        int              `json:"review_count"`
	CreatedAt          time.Time        `json:"created_at"`
}

func newProductResponse(product *models.Product) productResponse {
	return productResponse{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		Material:           product.Material,
		Category:           string(product.Category),
		Subcategory:        product.Subcategory,
		PriceMinor:         product.PriceMinor,
		OriginalPriceMinor: product.OriginalPriceMinor,
		ImageURL:           product.ImageURL,
		Images:             product.Images,
		Sizes:              product.Sizes,
		Colors:             product.Colors,
		IsNew:              product.IsNew,
		IsBestSeller:       product.IsBestSeller,
		IsActive:           product.IsActive,
		Rating:             product.Rating,
		ReviewCount:        product.ReviewCount,
		CreatedAt:          product.CreatedAt,
	}
}

func newProductListResponse(products []models.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return out
}
