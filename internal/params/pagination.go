package params

// maxVisiblePages is the widest page-control strip rendered without ellipses.
const maxVisiblePages = 7

// TotalPages is ceil(n/size). Zero items yield zero pages; callers render an
// empty state instead of a page control.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page within [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page is one slice of a list plus the numbers a page control needs.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	// StartItem and EndItem are 1-based, for "Showing 6 to 10 of 12".
	StartItem int `json:"start_item"`
	EndItem   int `json:"end_item"`
}

// Paginate returns items[(page-1)*size : page*size] after clamping page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultLimit
	}
	total := len(items)
	totalPages := TotalPages(total, size)
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := min(start+size, total)
	if start > total {
		start = total
	}

	out := Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if total > 0 {
		out.StartItem = start + 1
		out.EndItem = end
	}
	return out
}

// PageLink is one entry of a page-control strip: either a page number or an
// ellipsis gap.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// VisiblePages computes the windowed page strip. With seven pages or fewer
// every page is shown; otherwise the first and last page are always present
// and gaps are marked with an ellipsis.
func VisiblePages(page, totalPages int) []PageLink {
	if totalPages < 1 {
		return nil
	}

	var nums []int
	switch {
	case totalPages <= maxVisiblePages:
		nums = seq(1, totalPages)
	case page <= 4:
		nums = append(seq(1, 5), 0, totalPages)
	case page >= totalPages-3:
		nums = append([]int{1, 0}, seq(totalPages-4, totalPages)...)
	default:
		nums = append([]int{1, 0}, seq(page-1, page+1)...)
		nums = append(nums, 0, totalPages)
	}

	links := make([]PageLink, len(nums))
	for i, n := range nums {
		if n == 0 {
			links[i] = PageLink{Ellipsis: true}
			continue
		}
		links[i] = PageLink{Number: n, Current: n == page}
	}
	return links
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
