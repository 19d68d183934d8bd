package params

import (
	"strconv"
	"strings"

	"beacon-attendance/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page, limit and search from the query string and
// clamps them to sane values.
func NewQueryParams(c echo.Context) *QueryParams {
	return &QueryParams{
		PageNumber: toInt(c.QueryParam("page"), constants.DefaultPageNumber, 1, 0),
		PageSize:   toInt(c.QueryParam("limit"), constants.DefaultPageSize, 1, constants.MaxPageSize),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func toInt(raw string, fallback, min, max int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return fallback
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
