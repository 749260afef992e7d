package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/params"
	"catalogadmin/internal/session"

	"github.com/go-chi/chi/v5"
)

var errNothingToUpdate = errors.New("nothing to update")

type ProductListResponse struct {
	Products   []productResponse `json:"products"`
	Pagination params.Pagination `json:"pagination"`
}

type UpdateProductPayload struct {
	IsHidden   *bool   `json:"is_hidden"`
	WeightUnit *string `json:"weight_unit" validate:"omitempty,max=32"`
}

// listProductsHandler godoc
//
//	@Summary		Filtered and paginated product list
//	@Description	Search matches names, descriptions, code and category case-insensitively
//	@Tags			products
//	@Produce		json
//	@Param			page	query		int		false	"Page number"
//	@Param			limit	query		int		false	"Items per page"
//	@Param			q		query		string	false	"Search term"
//	@Success		200		{object}	ProductListResponse
//	@Failure		503		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}

	q := r.URL.Query()
	p := params.ParsePagination(q)
	filtered := products.Filter(app.catalog.List(), q.Get("q"))
	p.ComputeMeta(len(filtered))

	start := min(p.Offset, len(filtered))
	end := min(start+p.Limit, len(filtered))

	lang := getSessionFromContext(r).Controller.State().Language
	res := ProductListResponse{
		Products:   app.presentProducts(filtered[start:end], lang),
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary	Latest copy of one product
//	@Tags		products
//	@Produce	json
//	@Param		productID	path		int	true	"Product ID"
//	@Success	200			{object}	productResponse
//	@Failure	404			{object}	ErrorResponse
//	@Security	ApiKeyAuth
//	@Router		/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	product, ok := app.productFromPath(w, r)
	if !ok {
		return
	}

	lang := getSessionFromContext(r).Controller.State().Language
	if err := app.jsonResponse(w, http.StatusOK, app.presentProduct(product, lang)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler godoc
//
//	@Summary		Updates visibility or weight unit of a product
//	@Description	The remote API is updated first; the catalog is patched only after it confirms
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int						true	"Product ID"
//	@Param			payload		body		UpdateProductPayload	true	"Fields to change"
//	@Success		200			{object}	productResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/products/{productID} [patch]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	product, ok := app.productFromPath(w, r)
	if !ok {
		return
	}

	var payload UpdateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.IsHidden == nil && payload.WeightUnit == nil {
		app.badRequestResponse(w, r, errNothingToUpdate)
		return
	}
	if payload.WeightUnit != nil && strings.TrimSpace(*payload.WeightUnit) == "" {
		app.badRequestResponse(w, r, errors.New("weight_unit is required"))
		return
	}

	sess := getSessionFromContext(r)
	ctx := r.Context()

	if payload.IsHidden != nil {
		hidden := *payload.IsHidden
		if _, err := app.client.SetProductHidden(ctx, product.ID, hidden); err != nil {
			app.remoteUpdateFailed(w, r, sess, err, "Failed to update product visibility")
			return
		}
		app.patchProduct(product.ID, func(p products.Product) (products.Product, bool) {
			p.IsHidden = hidden
			return p, true
		})
		sess.Notifications.Success(visibilityMessage("Product", hidden))
	}

	if payload.WeightUnit != nil {
		unit := strings.TrimSpace(*payload.WeightUnit)
		if _, err := app.client.SetProductWeightUnit(ctx, product.ID, unit); err != nil {
			app.remoteUpdateFailed(w, r, sess, err, "Failed to update weight unit")
			return
		}
		app.patchProduct(product.ID, func(p products.Product) (products.Product, bool) {
			p.WeightUnit = unit
			return p, true
		})
		sess.Notifications.Success("Weight unit updated")
	}

	app.respondWithProduct(w, r, product.ID)
}

// patchProduct applies fn to the store's latest copy of the product under the
// store lock, so concurrent confirmed changes to other fields are kept.
func (app *application) patchProduct(id int64, fn func(products.Product) (products.Product, bool)) {
	found, err := app.catalog.Patch(id, fn)
	switch {
	case err != nil:
		app.logger.Warnw("could not patch catalog", "product_id", id, "error", err)
	case !found:
		app.logger.Warnw("confirmed update for entity no longer in catalog", "product_id", id)
	}
}

func (app *application) remoteUpdateFailed(w http.ResponseWriter, r *http.Request, sess *session.Session, err error, message string) {
	sess.Notifications.Error(message)
	app.badGatewayResponse(w, r, err, message)
}

func (app *application) respondWithProduct(w http.ResponseWriter, r *http.Request, id int64) {
	latest, ok := app.catalog.Get(id)
	if !ok {
		app.notFoundResponse(w, r, products.ErrNotReady)
		return
	}
	lang := getSessionFromContext(r).Controller.State().Language
	if err := app.jsonResponse(w, http.StatusOK, app.presentProduct(latest, lang)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) productFromPath(w http.ResponseWriter, r *http.Request) (products.Product, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid product ID"))
		return products.Product{}, false
	}
	product, ok := app.catalog.Get(id)
	if !ok {
		app.notFoundResponse(w, r, errors.New("product not found"))
		return products.Product{}, false
	}
	return product, true
}

func visibilityMessage(what string, hidden bool) string {
	if hidden {
		return what + " hidden"
	}
	return what + " visible"
}
