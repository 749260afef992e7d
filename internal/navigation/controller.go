package navigation

import (
	"errors"
	"sync"

	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/params"
)

var (
	ErrUnknownProduct = errors.New("product is not in the catalog")
	ErrNotReady       = errors.New("catalog is being loaded")
)

type Mode string

const (
	ModeList   Mode = "list"
	ModeDetail Mode = "detail"
)

// State is the view state of one operator session.
type State struct {
	SelectedProductID   *int64 `json:"selected_product_id"`
	CurrentPage         int    `json:"current_page"`
	SearchTerm          string `json:"search_term"`
	SavedScrollPosition int    `json:"saved_scroll_position"`
	Language            string `json:"language"`
}

func (s State) Mode() Mode {
	if s.SelectedProductID != nil {
		return ModeDetail
	}
	return ModeList
}

type Config struct {
	Location Location
	Memory   ScrollMemory
	Viewport Viewport
	Frames   Frames
	Catalog  Catalog

	PageSize int
	// ScrollThreshold is the offset at or below which scroll is not worth saving.
	ScrollThreshold int
	SmoothRestore   bool
}

// Controller decides between the list and the detail view and keeps the
// address bar and scroll memory in step with that decision. It is the only
// component that touches Location, ScrollMemory and Viewport.
type Controller struct {
	cfg Config

	mu    sync.Mutex
	state State
}

func NewController(cfg Config) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = params.DefaultLimit
	}
	if cfg.ScrollThreshold < 0 {
		cfg.ScrollThreshold = 0
	}
	return &Controller{
		cfg: cfg,
		state: State{
			CurrentPage: 1,
			Language:    products.DefaultLanguage,
		},
	}
}

// Mount adopts whatever the address bar encodes: a resolvable product opens
// the detail view directly, a page opens the list at that page.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := params.ParseViewQuery(c.cfg.Location.Query())
	c.state.CurrentPage = q.Page
	c.state.SearchTerm = q.Search
	if q.Lang != "" {
		c.state.Language = q.Lang
	}
	c.state.SelectedProductID = nil
	if q.Product != nil && c.resolvable(*q.Product) {
		id := *q.Product
		c.state.SelectedProductID = &id
	}
	if c.cfg.Catalog.Ready() {
		c.writeLocation()
	}
}

// SelectProduct moves from the list to the detail view of id. The current
// scroll offset is remembered before the address bar is touched.
func (c *Controller) SelectProduct(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.resolvable(id) {
		return ErrUnknownProduct
	}

	if c.state.SelectedProductID == nil {
		if y := c.cfg.Viewport.ScrollY(); y > c.cfg.ScrollThreshold {
			c.cfg.Memory.Save(y)
			c.state.SavedScrollPosition = y
		}
	}

	c.state.SelectedProductID = &id
	c.writeLocation()
	return nil
}

// Back returns to the list. The saved offset is restored once the list has
// been painted, then forgotten.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SelectedProductID = nil
	c.writeLocation()
	c.scheduleRestore()
}

// PopState handles browser back/forward: the address bar has already changed
// and the state follows it.
func (c *Controller) PopState() {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := params.ParseViewQuery(c.cfg.Location.Query())
	c.state.CurrentPage = q.Page
	c.state.SearchTerm = q.Search
	c.state.Language = products.DefaultLanguage
	if q.Lang != "" {
		c.state.Language = q.Lang
	}

	if q.Product != nil && c.resolvable(*q.Product) {
		id := *q.Product
		c.state.SelectedProductID = &id
		return
	}
	c.state.SelectedProductID = nil
	c.scheduleRestore()
}

// SetSearch changes the search term and always goes back to page 1.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchTerm = term
	c.state.CurrentPage = 1
	c.writeLocation()
}

// SetPage moves the list to page, clamped to the pages the current search has.
func (c *Controller) SetPage(page int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := products.Filter(c.cfg.Catalog.List(), c.state.SearchTerm)
	c.state.CurrentPage = params.ClampPage(page, params.TotalPages(len(filtered), c.cfg.PageSize))
	c.writeLocation()
	return c.state.CurrentPage
}

func (c *Controller) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Language = lang
	c.writeLocation()
}

// Reconcile drops back to the list when the selected product disappeared
// from the catalog, e.g. after a refetch.
func (c *Controller) Reconcile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconcile()
}

func (c *Controller) reconcile() bool {
	if !c.cfg.Catalog.Ready() {
		return false
	}
	if c.state.SelectedProductID == nil || c.resolvable(*c.state.SelectedProductID) {
		return false
	}
	c.state.SelectedProductID = nil
	c.writeLocation()
	return true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	s := c.state
	if s.SelectedProductID != nil {
		id := *s.SelectedProductID
		s.SelectedProductID = &id
	}
	return s
}

// ListView is the filtered, paginated grid.
type ListView struct {
	Page          params.Page[products.Product] `json:"page"`
	Window        []params.PageLink             `json:"window"`
	TotalProducts int                           `json:"total_products"`
	Search        string                        `json:"search"`
}

// DetailView always carries the store's latest copy of the product.
type DetailView struct {
	Product products.Product `json:"product"`
}

type View struct {
	Mode   Mode        `json:"mode"`
	State  State       `json:"state"`
	List   *ListView   `json:"list,omitempty"`
	Detail *DetailView `json:"detail,omitempty"`
}

// View renders the current state. The detail product is re-resolved on every
// call and the page is clamped against the current filter result. A detail
// view that cannot be resolved while the catalog reloads yields ErrNotReady.
func (c *Controller) View() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()

	if id := c.state.SelectedProductID; id != nil {
		p, ok := c.cfg.Catalog.Get(*id)
		if ok {
			return View{
				Mode:   ModeDetail,
				State:  c.snapshot(),
				Detail: &DetailView{Product: p},
			}, nil
		}
		// a reload finished after reconcile and dropped the product
		if !c.reconcile() {
			return View{}, ErrNotReady
		}
	}

	all := c.cfg.Catalog.List()
	filtered := products.Filter(all, c.state.SearchTerm)
	totalPages := params.TotalPages(len(filtered), c.cfg.PageSize)
	if clamped := params.ClampPage(c.state.CurrentPage, totalPages); clamped != c.state.CurrentPage {
		c.state.CurrentPage = clamped
		c.writeLocation()
	}

	page := params.Paginate(filtered, c.state.CurrentPage, c.cfg.PageSize)
	return View{
		Mode:  ModeList,
		State: c.snapshot(),
		List: &ListView{
			Page:          page,
			Window:        params.VisiblePages(page.Page, page.TotalPages),
			TotalProducts: len(all),
			Search:        c.state.SearchTerm,
		},
	}, nil
}

func (c *Controller) resolvable(id int64) bool {
	if !c.cfg.Catalog.Ready() {
		return false
	}
	_, ok := c.cfg.Catalog.Get(id)
	return ok
}

func (c *Controller) writeLocation() {
	q := params.ViewQuery{
		Product: c.state.SelectedProductID,
		Page:    c.state.CurrentPage,
		Search:  c.state.SearchTerm,
	}
	if c.state.Language != products.DefaultLanguage {
		q.Lang = c.state.Language
	}
	c.cfg.Location.Replace(q.Encode())
}

func (c *Controller) scheduleRestore() {
	c.cfg.Frames.AfterRender(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		y, ok := c.cfg.Memory.Load()
		if !ok {
			y = c.state.SavedScrollPosition
		}
		if y > 0 && c.state.SelectedProductID == nil {
			c.cfg.Viewport.ScrollTo(y, c.cfg.SmoothRestore)
		}
		c.cfg.Memory.Clear()
		c.state.SavedScrollPosition = 0
	})
}
