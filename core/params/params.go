package params

import (
	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/utils"

	"github.com/labstack/echo/v4"
)

// QueryParams holds common pagination/search query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams parses page/page_size/search from the request, clamping to
// sane bounds.
func NewQueryParams(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if n := utils.ToNumberWithDefault(c.QueryParam("page"), constants.DefaultPageNumber); n > 0 {
		p.PageNumber = n
	}
	if n := utils.ToNumberWithDefault(c.QueryParam("page_size"), constants.DefaultPageSize); n > 0 {
		p.PageSize = n
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	return p
}

// Offset returns the row offset for the current page.
func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
