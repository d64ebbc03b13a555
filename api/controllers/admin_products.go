package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/api/responses"
	"github.com/bhumi-studio/bhumi-backend/api/validators"
	"github.com/bhumi-studio/bhumi-backend/internal/catalog"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// AdminProductList serves the back-office catalog, inactive listings included.
func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.List(r.Context(), catalog.ListFilters{IncludeInactive: true})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(products))
	}
}

// AdminProductCreate adds a listing to the catalog.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product))
	}
}

// AdminProductUpdate patches a listing. Absent fields stay unchanged.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// AdminProductSetActive toggles a listing's storefront visibility.
func AdminProductSetActive(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body setProductActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), productID, body.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"is_active": body.Active})
	}
}

// AdminProductDelete removes a listing permanently. Past order items keep
// their own product snapshot.
func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createProductRequest struct {
	Name               string              `json:"name" validate:"required,min=2"`
	Description        string              `json:"description" validate:"required"`
	Material           string              `json:"material" validate:"required"`
	Category           string              `json:"category" validate:"required"`
	Subcategory        string              `json:"subcategory" validate:"required"`
	PriceMinor         int                 `json:"price_minor" validate:"required,gt=0"`
	OriginalPriceMinor *int                `json:"original_price_minor"`
	ImageURL           string              `json:"image_url" validate:"required"`
	Images             types.StringList    `json:"images"`
	Sizes              types.StringList    `json:"sizes" validate:"required,min=1"`
	Colors             []types.ColorOption `json:"colors" validate:"required,min=1,dive"`
	IsNew              bool                `json:"is_new"`
	IsBestSeller       bool                `json:"is_best_seller"`
}

func (r createProductRequest) toInput() (catalog.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(r.Category)
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return catalog.CreateProductInput{
		Name:               r.Name,
		Description:        r.Description,
		Material:           r.Material,
		Category:           category,
		Subcategory:        r.Subcategory,
		PriceMinor:         r.PriceMinor,
		OriginalPriceMinor: r.OriginalPriceMinor,
		ImageURL:           r.ImageURL,
		Images:             r.Images,
		Sizes:              r.Sizes,
		Colors:             types.ColorList(r.Colors),
		IsNew:              r.IsNew,
		IsBestSeller:       r.IsBestSeller,
	}, nil
}

type updateProductRequest struct {
	Name               *string              `json:"name"`
	Description        *string              `json:"description"`
	Material           *string              `json:"material"`
	Category           *string              `json:"category"`
	Subcategory        *string              `json:"subcategory"`
	PriceMinor         *int                 `json:"price_minor"`
	OriginalPriceMinor *int                 `json:"original_price_minor"`
	ImageURL           *string              `json:"image_url"`
	Images             *types.StringList    `json:"images"`
	Sizes              *types.StringList    `json:"sizes"`
	Colors             *[]types.ColorOption `json:"colors"`
	IsNew              *bool                `json:"is_new"`
	IsBestSeller       *bool                `json:"is_best_seller"`
	IsActive           *bool                `json:"is_active"`
}

func (r updateProductRequest) toInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:               r.Name,
		Description:        r.Description,
		Material:           r.Material,
		Subcategory:        r.Subcategory,
		PriceMinor:         r.PriceMinor,
		OriginalPriceMinor: r.OriginalPriceMinor,
		ImageURL:           r.ImageURL,
		Images:             r.Images,
		Sizes:              r.Sizes,
		IsNew:              r.IsNew,
		IsBestSeller:       r.IsBestSeller,
		IsActive:           r.IsActive,
	}
	if r.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if r.Colors != nil {
		colors := types.ColorList(*r.Colors)
		input.Colors = &colors
	}
	return input, nil
}

type setProductActiveRequest struct {
	Active bool `json:"active"`
}
