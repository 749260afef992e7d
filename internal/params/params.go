package params

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// URL: /v1/products?page=2&limit=30
// → ParsePagination() → Pagination{Limit:30, Page:2, Offset:30}
// → catalog is filtered in memory, then sliced at Offset
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`       // items per page
	Offset     int  `json:"offset"`      // index of the first item on the page
	Page       int  `json:"page"`        // Current Page number
	Total      int  `json:"total"`       // Total items after filtering
	TotalPages int  `json:"total_pages"` // Total pages available
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

const (
	DefaultLimit = 12
	MaxLimit     = 60
)

// ParsePagination parses ?limit=...&page=... safely.  Careful key are case sensitive
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: DefaultLimit,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = DefaultLimit
			case limit > MaxLimit:
				p.Limit = MaxLimit
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after the total is known.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	p.TotalPages = TotalPages(total, p.Limit)
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// ViewQuery is the navigable view state carried in the address bar.
// Product nil means list view; Page defaults to 1.
type ViewQuery struct {
	Product *int64 `schema:"product"`
	Page    int    `schema:"page"`
	Search  string `schema:"q"`
	Lang    string `schema:"lang"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseViewQuery decodes the address-bar parameters. Malformed values are
// treated as absent rather than rejected.
func ParseViewQuery(q url.Values) ViewQuery {
	var v ViewQuery
	if err := decoder.Decode(&v, q); err != nil {
		// fields that failed conversion stay at their zero value
		if _, ok := err.(schema.MultiError); !ok {
			v = ViewQuery{}
		}
	}
	if v.Product != nil && *v.Product <= 0 {
		v.Product = nil
	}
	if v.Page < 1 {
		v.Page = 1
	}
	return v
}

// Encode writes the view query back into address-bar form. Absent product,
// page 1 and an empty search are omitted.
func (v ViewQuery) Encode() url.Values {
	q := url.Values{}
	if v.Product != nil {
		q.Set("product", strconv.FormatInt(*v.Product, 10))
	}
	if v.Page > 1 {
		q.Set("page", strconv.Itoa(v.Page))
	}
	if v.Search != "" {
		q.Set("q", v.Search)
	}
	if v.Lang != "" {
		q.Set("lang", v.Lang)
	}
	return q
}
