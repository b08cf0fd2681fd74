package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/olistboard/internal/pkg/validation"
)

const defaultPageLimit = 100

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// parsePage reads and validates offset/limit query parameters.
func parsePage(c *fiber.Ctx) (validation.PageQuery, error) {
	q := validation.PageQuery{Offset: 0, Limit: defaultPageLimit}
	if err := c.QueryParser(&q); err != nil {
		return q, &validation.Error{Fields: []validation.FieldError{{Field: "query", Message: err.Error()}}}
	}
	if err := validation.Struct(&q); err != nil {
		return q, err
	}
	return q, nil
}

// paginate slices items to the requested page, sets Link headers and
// writes the JSON envelope.
func paginate[T any](c *fiber.Ctx, items []T) error {
	q, err := parsePage(c)
	if err != nil {
		return respondError(c, err)
	}

	total := len(items)
	page := []T{}
	if q.Offset < total {
		end := q.Offset + q.Limit
		if end > total {
			end = total
		}
		page = items[q.Offset:end]
	}

	pg := Pagination{Offset: q.Offset, Limit: q.Limit, Total: total}
	SetLinkHeaders(c, pg)
	return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses.
// Query parameters other than offset and limit are carried over.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	extra := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		if key != "offset" && key != "limit" {
			extra.Add(key, string(v))
		}
	})
	suffix := ""
	if len(extra) > 0 {
		suffix = "&" + extra.Encode()
	}

	link := func(offset int, rel string) string {
		return fmt.Sprintf(`<%s?offset=%d&limit=%d%s>; rel="%s"`, base, offset, p.Limit, suffix, rel)
	}

	links := []string{link(0, "first")}
	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, link(prev, "prev"))
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, link(p.Offset+p.Limit, "next"))
	}
	lastOffset := p.Total - p.Limit
	if lastOffset < 0 {
		lastOffset = 0
	}
	links = append(links, link(lastOffset, "last"))

	c.Set("Link", strings.Join(links, ", "))
}
