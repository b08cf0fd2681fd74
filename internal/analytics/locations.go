package analytics

import (
	"sort"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

type zipPlace struct {
	zip   int
	city  string
	state string
}

// resolvedZip is the coordinate chosen for one zip-code prefix.
type resolvedZip struct {
	city     string
	state    string
	lat, lng float64
}

// resolveZips picks one place per zip prefix. The zip's state is the
// alphabetically first state seen for it; among that state's cities the
// alphabetically first one wins. Coordinates are the medians of the raw
// samples for that (zip, city, state).
func resolveZips(geo []domain.Geolocation) map[int]resolvedZip {
	firstState := make(map[int]string)
	samples := make(map[zipPlace][2][]float64)
	for _, g := range geo {
		if s, ok := firstState[g.ZipCodePrefix]; !ok || g.State < s {
			firstState[g.ZipCodePrefix] = g.State
		}
		k := zipPlace{g.ZipCodePrefix, g.City, g.State}
		v := samples[k]
		v[0] = append(v[0], g.Lat)
		v[1] = append(v[1], g.Lng)
		samples[k] = v
	}

	out := make(map[int]resolvedZip, len(firstState))
	for k, v := range samples {
		if k.state != firstState[k.zip] {
			continue
		}
		if cur, ok := out[k.zip]; ok && cur.city <= k.city {
			continue
		}
		out[k.zip] = resolvedZip{city: k.city, state: k.state, lat: Median(v[0]), lng: Median(v[1])}
	}
	return out
}

// CustomerLocations resolves every customer to coordinates through its zip
// prefix and keeps the first row per unique customer, in table order.
// Customers whose zip is unknown are dropped.
func CustomerLocations(ds *domain.Dataset) []domain.CustomerLocation {
	zips := resolveZips(ds.Geolocations)
	seen := make(map[string]struct{}, len(ds.Customers))
	out := make([]domain.CustomerLocation, 0, len(ds.Customers))
	for _, c := range ds.Customers {
		z, ok := zips[c.ZipCodePrefix]
		if !ok {
			continue
		}
		if _, dup := seen[c.UniqueID]; dup {
			continue
		}
		seen[c.UniqueID] = struct{}{}
		out = append(out, domain.CustomerLocation{
			CustomerUniqueID: c.UniqueID,
			ZipCodePrefix:    c.ZipCodePrefix,
			City:             z.city,
			State:            z.state,
			Location:         domain.GeoPoint{Lat: z.lat, Lon: z.lng},
		})
	}
	return out
}

// Points extracts the coordinates of locs, preserving order.
func Points(locs []domain.CustomerLocation) []domain.GeoPoint {
	pts := make([]domain.GeoPoint, len(locs))
	for i, l := range locs {
		pts[i] = l.Location
	}
	return pts
}

// StateDensities counts located customers per state, most populous first.
func StateDensities(locs []domain.CustomerLocation) []domain.StateDensity {
	counts := make(map[string]int)
	for _, l := range locs {
		counts[l.State]++
	}
	out := make([]domain.StateDensity, 0, len(counts))
	for s, n := range counts {
		out = append(out, domain.StateDensity{State: s, Customers: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		return out[i].State < out[j].State
	})
	return out
}

// Median returns the middle value of vs, averaging the two middle values
// for even lengths. vs is not modified.
func Median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	s := append([]float64(nil), vs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
