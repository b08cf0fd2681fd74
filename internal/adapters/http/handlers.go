package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/pkg/validation"
)

// rangeJSON is the wire form of a date range.
type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toRangeJSON(r domain.DateRange) rangeJSON {
	return rangeJSON{Start: r.Start.Format(domain.DateLayout), End: r.End.Format(domain.DateLayout)}
}

// parseRange reads the optional start/end query parameters. Missing values
// fall back to the dataset bounds.
func parseRange(c *fiber.Ctx, deps *Dependencies) (domain.DateRange, error) {
	var q validation.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.DateRange{}, &validation.Error{Fields: []validation.FieldError{{Field: "query", Message: err.Error()}}}
	}
	if err := validation.Struct(&q); err != nil {
		return domain.DateRange{}, err
	}
	return deps.Analytics.ResolveRange(q.Start, q.End)
}

// DateRangeHandler returns the first and last approval day of the dataset.
func DateRangeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := deps.Analytics.Bounds()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toRangeJSON(r))
	}
}

// summaryResponse is a snapshot with its range in YYYY-MM-DD form.
type summaryResponse struct {
	*domain.Snapshot
	Range rangeJSON `json:"range"`
}

// SummaryHandler returns every analysis for the selected range.
func SummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c, deps)
		if err != nil {
			return respondError(c, err)
		}
		snap := deps.Analytics.Summary(c.UserContext(), r)
		return c.JSON(summaryResponse{Snapshot: snap, Range: toRangeJSON(r)})
	}
}

// TopProductHandler returns the best-selling product of the range.
func TopProductHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c, deps)
		if err != nil {
			return respondError(c, err)
		}
		top, err := deps.Analytics.TopProduct(c.UserContext(), r)
		if errors.Is(err, domain.ErrNoData) {
			return errNotFound(c, "no products sold in the selected range")
		}
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(top)
	}
}

// ProductRevenueHandler lists per-product revenue, highest first.
func ProductRevenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c, deps)
		if err != nil {
			return respondError(c, err)
		}
		return paginate(c, deps.Analytics.ProductRevenues(c.UserContext(), r))
	}
}

// RegionSpendHandler returns mean payment per state with 95% intervals.
func RegionSpendHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": deps.Analytics.RegionSpend(c.UserContext())})
	}
}

// TopSpendersHandler lists customers by total payment, largest first.
func TopSpendersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paginate(c, deps.Analytics.TopSpenders(c.UserContext(), 0))
	}
}

// CustomerLocationsHandler lists de-duplicated customers with coordinates.
func CustomerLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paginate(c, deps.Analytics.CustomerLocations(c.UserContext()))
	}
}

// StateDensityHandler counts located customers per state.
func StateDensityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": deps.Analytics.StateDensity(c.UserContext())})
	}
}

// ChartHandler serves /v1/charts/<name>.png.
func ChartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file := c.Params("file")
		name, ok := strings.CutSuffix(file, ".png")
		if !ok {
			return errNotFound(c, "unknown chart "+file)
		}
		return sendChart(c, deps, name)
	}
}

// MapHandler serves the customer map under its old path.
func MapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return sendChart(c, deps, domain.ChartCustomerMap)
	}
}

func sendChart(c *fiber.Ctx, deps *Dependencies, name string) error {
	r, err := parseRange(c, deps)
	if err != nil {
		return respondError(c, err)
	}
	data, err := deps.Charts.Render(c.UserContext(), name, r)
	if err != nil {
		if errors.Is(err, domain.ErrImageUnavailable) {
			LoggerFromCtx(c.UserContext()).Warn("chart background unavailable", "chart", name, "error", err)
		}
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// PortraitHandler serves the sidebar portrait.
func PortraitHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Portrait == nil {
			return errImageUnavailable(c, "portrait not configured")
		}
		data, mime, err := deps.Portrait.Bytes(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, mime)
		return c.Send(data)
	}
}
