package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPaginate_PageCountMatchesCeil(t *testing.T) {
	cases := []struct {
		total, pageSize int
		wantCount       int // 0 means absent
		wantPages       int
	}{
		{0, 20, 0, 0},
		{1, 20, 0, 0},
		{20, 20, 0, 0},
		{21, 20, 2, 2},
		{45, 20, 3, 3},
		{100, 20, 5, 5},
		{7, 3, 3, 3},
	}
	for _, tc := range cases {
		w := Paginate(tc.total, 1, tc.pageSize)
		if w.PageCount != tc.wantCount {
			t.Errorf("Paginate(%d, 1, %d).PageCount = %d, want %d", tc.total, tc.pageSize, w.PageCount, tc.wantCount)
		}
		if len(w.Pages) != tc.wantPages {
			t.Errorf("Paginate(%d, 1, %d) pages len = %d, want %d", tc.total, tc.pageSize, len(w.Pages), tc.wantPages)
		}
	}
}

func TestPaginate_Window(t *testing.T) {
	w := Paginate(45, 2, 20)
	if w.Skip != 20 || w.Limit != 20 {
		t.Errorf("expected skip=20 limit=20, got skip=%d limit=%d", w.Skip, w.Limit)
	}
	if w.PageCount != 3 {
		t.Errorf("expected page count 3, got %d", w.PageCount)
	}
	want := []int{1, 2, 3}
	for i, p := range w.Pages {
		if p != want[i] {
			t.Fatalf("expected pages %v, got %v", want, w.Pages)
		}
	}
}

func TestPaginate_PageDefaultsToOne(t *testing.T) {
	for _, page := range []int{0, -1, -5} {
		w := Paginate(100, page, 20)
		if w.Skip != 0 {
			t.Errorf("Paginate(100, %d, 20).Skip = %d, want 0", page, w.Skip)
		}
	}
}

func TestPaginate_PagesAreSequential(t *testing.T) {
	w := Paginate(205, 4, 20)
	if len(w.Pages) != w.PageCount {
		t.Fatalf("pages len %d != page count %d", len(w.Pages), w.PageCount)
	}
	for i, p := range w.Pages {
		if p != i+1 {
			t.Fatalf("pages[%d] = %d, want %d", i, p, i+1)
		}
	}
}

func TestPageFromContext(t *testing.T) {
	e := echo.New()
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if got := PageFromContext(c); got != tc.want {
			t.Errorf("PageFromContext(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
