package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewQueryParams(t *testing.T) {
	cases := []struct {
		query      string
		wantPage   int
		wantSize   int
		wantSearch string
	}{
		{"", 1, 20, ""},
		{"?page=3&limit=10", 3, 10, ""},
		{"?page=0&limit=-4", 1, 20, ""},
		{"?page=abc&limit=1000&search=%20sala%20", 1, 100, "sala"},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		got := NewQueryParams(c)
		if got.PageNumber != tc.wantPage || got.PageSize != tc.wantSize || got.Search != tc.wantSearch {
			t.Errorf("query %q: got %+v", tc.query, got)
		}
	}
}

func TestQueryParams_Offset(t *testing.T) {
	p := QueryParams{PageNumber: 3, PageSize: 20}
	if p.Offset() != 40 {
		t.Fatalf("expected offset 40, got %d", p.Offset())
	}
}
