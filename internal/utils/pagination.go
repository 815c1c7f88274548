package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/community-service-hub/internal/constants"
)

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows skipped before this page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns how many pages of p.Size hold total rows
func (p Page) TotalPages(total int64) int {
	if p.Size < 1 || total <= 0 {
		return 0
	}
	size := int64(p.Size)
	return int((total + size - 1) / size)
}

// ParsePage reads ?page= and ?limit=. Missing or out-of-range values fall
// back to the first page and the default size.
func ParsePage(c *gin.Context) Page {
	page := Page{Number: 1, Size: constants.DefaultPageSize}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n >= 1 {
		page.Number = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n >= constants.MinPageSize && n <= constants.MaxPageSize {
		page.Size = n
	}
	return page
}
