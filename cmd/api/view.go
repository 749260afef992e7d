package main

import (
	"errors"
	"net/http"

	"catalogadmin/internal/navigation"
	"catalogadmin/internal/params"
	"catalogadmin/internal/session"
)

type ListViewResponse struct {
	Products      []productResponse `json:"products"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	Total         int               `json:"total"`
	TotalPages    int               `json:"total_pages"`
	HasPrev       bool              `json:"has_prev"`
	HasNext       bool              `json:"has_next"`
	StartItem     int               `json:"start_item"`
	EndItem       int               `json:"end_item"`
	Window        []params.PageLink `json:"window"`
	TotalProducts int               `json:"total_products"`
	Search        string            `json:"search"`
}

type DetailViewResponse struct {
	Product productResponse `json:"product"`
}

// ViewResponse is everything the UI needs to paint the session: which view,
// its data, and the query the address bar should show.
type ViewResponse struct {
	Mode     navigation.Mode     `json:"mode"`
	State    navigation.State    `json:"state"`
	Location string              `json:"location"`
	List     *ListViewResponse   `json:"list,omitempty"`
	Detail   *DetailViewResponse `json:"detail,omitempty"`
}

type FrameResponse struct {
	Flushed       int                           `json:"flushed"`
	RestoreScroll *navigation.ScrollInstruction `json:"restore_scroll"`
}

type SearchPayload struct {
	Term string `json:"term" validate:"max=200"`
}

type PagePayload struct {
	Page int `json:"page" validate:"required,min=1"`
}

type LanguagePayload struct {
	Language string `json:"language" validate:"required,oneof=en ar fr de tr fa ru zh da"`
}

type SelectProductPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	ScrollY   int   `json:"scroll_y" validate:"min=0"`
}

func (app *application) presentView(sess *session.Session) (ViewResponse, error) {
	v, err := sess.Controller.View()
	if err != nil {
		return ViewResponse{}, err
	}
	res := ViewResponse{
		Mode:     v.Mode,
		State:    v.State,
		Location: sess.Location.Query().Encode(),
	}

	switch {
	case v.Detail != nil:
		res.Detail = &DetailViewResponse{Product: app.presentProduct(v.Detail.Product, v.State.Language)}
	case v.List != nil:
		page := v.List.Page
		res.List = &ListViewResponse{
			Products:      app.presentProducts(page.Items, v.State.Language),
			Page:          page.Page,
			PageSize:      page.PageSize,
			Total:         page.Total,
			TotalPages:    page.TotalPages,
			HasPrev:       page.HasPrev,
			HasNext:       page.HasNext,
			StartItem:     page.StartItem,
			EndItem:       page.EndItem,
			Window:        v.List.Window,
			TotalProducts: v.List.TotalProducts,
			Search:        v.List.Search,
		}
	}
	return res, nil
}

func (app *application) respondWithView(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	res, err := app.presentView(sess)
	if err != nil {
		switch {
		case errors.Is(err, navigation.ErrNotReady):
			app.serviceUnavailableResponse(w, r, err, loadingMessage)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getViewHandler godoc
//
//	@Summary	Current list or detail view of the session
//	@Tags		view
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Failure	503	{object}	ErrorResponse
//	@Security	ApiKeyAuth
//	@Router		/view [get]
func (app *application) getViewHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	app.respondWithView(w, r, getSessionFromContext(r))
}

// mountViewHandler godoc
//
//	@Summary		Adopts the address bar of a fresh page load
//	@Description	A resolvable product opens its detail view; a page opens the list at that page
//	@Tags			view
//	@Produce		json
//	@Param			product	query		int		false	"Product ID"
//	@Param			page	query		int		false	"Page number"
//	@Param			q		query		string	false	"Search term"
//	@Success		200		{object}	ViewResponse
//	@Security		ApiKeyAuth
//	@Router			/view/mount [post]
func (app *application) mountViewHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	sess := getSessionFromContext(r)
	sess.Location.Set(r.URL.Query())
	sess.Controller.Mount()
	app.respondWithView(w, r, sess)
}

// searchViewHandler godoc
//
//	@Summary	Sets the search term and returns to page 1
//	@Tags		view
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		SearchPayload	true	"Search term"
//	@Success	200		{object}	ViewResponse
//	@Security	ApiKeyAuth
//	@Router		/view/search [post]
func (app *application) searchViewHandler(w http.ResponseWriter, r *http.Request) {
	var payload SearchPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !app.requireReady(w, r) {
		return
	}

	sess := getSessionFromContext(r)
	sess.Controller.SetSearch(payload.Term)
	app.respondWithView(w, r, sess)
}

// pageViewHandler godoc
//
//	@Summary	Moves the list to a page
//	@Tags		view
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		PagePayload	true	"Page"
//	@Success	200		{object}	ViewResponse
//	@Security	ApiKeyAuth
//	@Router		/view/page [post]
func (app *application) pageViewHandler(w http.ResponseWriter, r *http.Request) {
	var payload PagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !app.requireReady(w, r) {
		return
	}

	sess := getSessionFromContext(r)
	sess.Controller.SetPage(payload.Page)
	app.respondWithView(w, r, sess)
}

// languageViewHandler godoc
//
//	@Summary	Switches the display language of names and descriptions
//	@Tags		view
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		LanguagePayload	true	"Language"
//	@Success	200		{object}	ViewResponse
//	@Security	ApiKeyAuth
//	@Router		/view/language [post]
func (app *application) languageViewHandler(w http.ResponseWriter, r *http.Request) {
	var payload LanguagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !app.requireReady(w, r) {
		return
	}

	sess := getSessionFromContext(r)
	sess.Controller.SetLanguage(payload.Language)
	app.respondWithView(w, r, sess)
}

// selectProductHandler godoc
//
//	@Summary		Opens the detail view of a product
//	@Description	scroll_y is the list offset at the time of the click; it is restored on back
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SelectProductPayload	true	"Selection"
//	@Success		200		{object}	ViewResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/view/select [post]
func (app *application) selectProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload SelectProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !app.requireReady(w, r) {
		return
	}

	sess := getSessionFromContext(r)
	sess.Viewport.Report(payload.ScrollY)
	if err := sess.Controller.SelectProduct(payload.ProductID); err != nil {
		switch {
		case errors.Is(err, navigation.ErrUnknownProduct):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	app.respondWithView(w, r, sess)
}

// backViewHandler godoc
//
//	@Summary		Returns from the detail view to the list
//	@Description	The saved scroll offset is handed out by the next /view/frame call
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Security		ApiKeyAuth
//	@Router			/view/back [post]
func (app *application) backViewHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	sess := getSessionFromContext(r)
	sess.Controller.Back()
	app.respondWithView(w, r, sess)
}

// popStateHandler godoc
//
//	@Summary	Follows browser back/forward to the given address
//	@Tags		view
//	@Produce	json
//	@Param		product	query		int	false	"Product ID"
//	@Param		page	query		int	false	"Page number"
//	@Success	200		{object}	ViewResponse
//	@Security	ApiKeyAuth
//	@Router		/view/popstate [post]
func (app *application) popStateHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireReady(w, r) {
		return
	}
	sess := getSessionFromContext(r)
	sess.Location.Set(r.URL.Query())
	sess.Controller.PopState()
	app.respondWithView(w, r, sess)
}

// frameHandler godoc
//
//	@Summary		Signals that the last view has been painted
//	@Description	Runs deferred work and returns the scroll the client should perform, if any
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	FrameResponse
//	@Security		ApiKeyAuth
//	@Router			/view/frame [post]
func (app *application) frameHandler(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r)

	res := FrameResponse{Flushed: sess.Frames.Flush()}
	if s, ok := sess.Viewport.TakeScroll(); ok {
		res.RestoreScroll = &s
	}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}
