package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"money": func(v float64) string { return printer.Sprintf("Rp%.2f", v) },
	"prob":  func(v float64) string { return printer.Sprintf("%.4f", v) },
}).ParseFS(templateFS, "templates/dashboard.html"))

// pageData feeds templates/dashboard.html.
type pageData struct {
	Title         string
	Author        string
	Caption       string
	PortraitOK    bool
	PortraitName  string
	Min, Max      string
	Start, End    string
	Notice        string
	Top           *domain.ProductRevenue
	ChartQuery    template.URL
	MapOK         bool
	MapWarning    string
	Located       int
	TopStateCount int
	TopState      string
}

// PageHandler renders the single-page dashboard.
func PageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := LoggerFromCtx(ctx)

		bounds, err := deps.Analytics.Bounds()
		if err != nil {
			return respondError(c, err)
		}

		data := pageData{
			Title:   "Product Analysis and Customer Spend Analysis",
			Author:  "Fadiyah Nur Aulia Sari",
			Caption: "Copyright (C) FadiyahSari 2024",
			Min:     bounds.Start.Format(domain.DateLayout),
			Max:     bounds.End.Format(domain.DateLayout),
		}

		r, err := parseRange(c, deps)
		if err != nil {
			data.Notice = "Tanggal tidak valid, menampilkan seluruh rentang data: " + err.Error()
			r = bounds
		}
		data.Start = r.Start.Format(domain.DateLayout)
		data.End = r.End.Format(domain.DateLayout)
		data.ChartQuery = template.URL(url.Values{"start": {data.Start}, "end": {data.End}}.Encode())

		if deps.Portrait != nil {
			data.PortraitName = deps.Portrait.Name()
			if _, _, err := deps.Portrait.Bytes(ctx); err == nil {
				data.PortraitOK = true
			} else {
				log.Warn("portrait unavailable", "asset", data.PortraitName, "error", err)
			}
		}

		top, err := deps.Analytics.TopProduct(ctx, r)
		if err != nil && !errors.Is(err, domain.ErrNoData) {
			return respondError(c, err)
		}
		data.Top = top

		if deps.MapImage != nil {
			if _, err := deps.MapImage.Image(ctx); err == nil {
				data.MapOK = true
			} else {
				data.MapWarning = err.Error()
			}
		} else {
			data.MapWarning = "background map not configured"
		}

		density := deps.Analytics.StateDensity(ctx)
		data.Located = len(deps.Analytics.CustomerLocations(ctx))
		if len(density) > 0 {
			data.TopState = density[0].State
			data.TopStateCount = density[0].Customers
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, data); err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}
}
