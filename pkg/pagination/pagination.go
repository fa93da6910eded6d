// Package pagination holds the page arithmetic shared by every listing
// endpoint. The patient and clinical-record listings must stay in
// lockstep, so both go through Paginate rather than computing offsets
// locally.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// DefaultPageSize is the fixed window size of all listings.
const DefaultPageSize = 20

// Window is the result of Paginate: the SQL window for the requested
// page plus the page metadata reported to the caller.
//
// PageCount is 0 when the whole result set fits on a single page; the
// caller treats that as "absent" and renders no pagination controls.
// Pages is the 1-indexed page list [1..PageCount], nil when PageCount
// is absent.
type Window struct {
	Skip      int
	Limit     int
	PageCount int
	Pages     []int
}

// Paginate computes the window for a 1-indexed page over total rows.
// A page of zero or less is treated as page 1.
func Paginate(total, page, pageSize int) Window {
	if page <= 0 {
		page = 1
	}
	w := Window{
		Skip:  pageSize * (page - 1),
		Limit: pageSize,
	}
	count := (total + pageSize - 1) / pageSize
	if count <= 1 {
		return w
	}
	w.PageCount = count
	w.Pages = make([]int, count)
	for i := range w.Pages {
		w.Pages[i] = i + 1
	}
	return w
}

// PageFromContext extracts the requested page number from the echo
// context. Absent or malformed values default to page 1.
func PageFromContext(c echo.Context) int {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	return page
}

// Response wraps a paginated API response.
type Response struct {
	Data      interface{} `json:"data"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count,omitempty"`
	Pages     []int       `json:"pages,omitempty"`
}

func NewResponse(data interface{}, total, page int, w Window) *Response {
	return &Response{
		Data:      data,
		Total:     total,
		Page:      page,
		PageCount: w.PageCount,
		Pages:     w.Pages,
	}
}
