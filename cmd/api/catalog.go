package main

import (
	"context"
	"errors"
	"net/http"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain/products"
)

const (
	fetchFailedMessage = "Failed to fetch products"
	loadingMessage     = "Loading products..."
)

type CatalogResponse struct {
	State    products.State `json:"state"`
	Products int            `json:"products"`
}

// getCatalogHandler godoc
//
//	@Summary		Catalog load state
//	@Description	Returns 503 with the fetch error message while the catalog is in the failed state
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/catalog [get]
func (app *application) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	snap := app.catalog.Snapshot()
	if snap.State == products.StateFailed {
		app.serviceUnavailableResponse(w, r, snap.Err, fetchErrorMessage(snap.Err))
		return
	}

	res := CatalogResponse{State: snap.State, Products: len(snap.Products)}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// refetchCatalogHandler godoc
//
//	@Summary	Reloads the whole catalog from the remote API
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	CatalogResponse
//	@Failure	409	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Security	ApiKeyAuth
//	@Router		/catalog/refetch [post]
func (app *application) refetchCatalogHandler(w http.ResponseWriter, r *http.Request) {
	// the fetch outlives a client that goes away; the store is shared
	ctx := context.WithoutCancel(r.Context())

	if err := app.catalog.Refetch(ctx); err != nil {
		switch {
		case errors.Is(err, products.ErrNotLoaded):
			app.conflictResponse(w, r, err)
		default:
			app.serviceUnavailableResponse(w, r, err, fetchErrorMessage(err))
		}
		return
	}
	app.sessions.Reconcile()

	snap := app.catalog.Snapshot()
	res := CatalogResponse{State: snap.State, Products: len(snap.Products)}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// fetchErrorMessage is the text shown on the full-screen error.
func fetchErrorMessage(err error) string {
	var fe *catalogapi.FetchError
	// a non-2xx body is not meant for the operator
	if errors.As(err, &fe) && fe.StatusCode == 0 && fe.Message != "" {
		return fe.Message
	}
	return fetchFailedMessage
}

// requireReady writes 503 unless the catalog can be read.
func (app *application) requireReady(w http.ResponseWriter, r *http.Request) bool {
	snap := app.catalog.Snapshot()
	switch snap.State {
	case products.StateReady:
		return true
	case products.StateFailed:
		app.serviceUnavailableResponse(w, r, snap.Err, fetchErrorMessage(snap.Err))
	default:
		app.serviceUnavailableResponse(w, r, products.ErrNotReady, loadingMessage)
	}
	return false
}
