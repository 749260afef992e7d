package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"catalogadmin/internal/domain/products"

	"github.com/go-chi/chi/v5"
)

type UpdateVariantPayload struct {
	IsHidden  *bool   `json:"is_hidden"`
	Packaging *string `json:"packaging" validate:"omitempty,max=64"`
}

// updateVariantHandler godoc
//
//	@Summary		Updates visibility or packaging of a variant
//	@Description	The remote API is updated first; the catalog is patched only after it confirms
//	@Tags			variants
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int						true	"Product ID"
//	@Param			variantID	path		int						true	"Variant ID"
//	@Param			payload		body		UpdateVariantPayload	true	"Fields to change"
//	@Success		200			{object}	productResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/products/{productID}/variants/{variantID} [patch]
func (app *application) updateVariantHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	product, ok := app.productFromPath(w, r)
	if !ok {
		return
	}

	variantID, err := strconv.ParseInt(chi.URLParam(r, "variantID"), 10, 64)
	if err != nil || variantID <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid variant ID"))
		return
	}
	if _, ok := product.Variant(variantID); !ok {
		app.notFoundResponse(w, r, errors.New("variant not found"))
		return
	}

	var payload UpdateVariantPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.IsHidden == nil && payload.Packaging == nil {
		app.badRequestResponse(w, r, errNothingToUpdate)
		return
	}
	if payload.Packaging != nil && strings.TrimSpace(*payload.Packaging) == "" {
		app.badRequestResponse(w, r, errors.New("packaging is required"))
		return
	}

	sess := getSessionFromContext(r)
	ctx := r.Context()

	if payload.IsHidden != nil {
		hidden := *payload.IsHidden
		if _, err := app.client.SetVariantHidden(ctx, product.ID, variantID, hidden); err != nil {
			app.remoteUpdateFailed(w, r, sess, err, "Failed to update variant visibility")
			return
		}
		app.patchProduct(product.ID, func(p products.Product) (products.Product, bool) {
			return p.WithVariantHidden(variantID, hidden)
		})
		sess.Notifications.Success(visibilityMessage("Variant", hidden))
	}

	if payload.Packaging != nil {
		packaging := strings.TrimSpace(*payload.Packaging)
		if _, err := app.client.SetVariantPackaging(ctx, product.ID, variantID, packaging); err != nil {
			app.remoteUpdateFailed(w, r, sess, err, "Failed to update packaging")
			return
		}
		app.patchProduct(product.ID, func(p products.Product) (products.Product, bool) {
			return p.WithVariantPackaging(variantID, packaging)
		})
		sess.Notifications.Success("Packaging updated")
	}

	app.respondWithProduct(w, r, product.ID)
}
