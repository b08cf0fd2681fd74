package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", f)
}

// render writes v as JSON or YAML, or hands a tabwriter to table. YAML goes
// through the JSON encoding so both formats share the json tag names.
func render(w io.Writer, format string, v interface{}, table func(tw *tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func writeSnapshot(w io.Writer, format string, snap *domain.Snapshot) error {
	return render(w, format, snap, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "range\t%s .. %s\n", snap.Range.Start.Format(domain.DateLayout), snap.Range.End.Format(domain.DateLayout))
		fmt.Fprintf(tw, "orders\t%d\n", snap.Orders)
		if p := snap.TopProduct; p != nil {
			fmt.Fprintf(tw, "top product\t%s (%s)\t%.2f\t%d orders\n", p.ProductID, categoryOrDash(p.CategoryName), p.TotalRevenue, p.OrderCount)
		} else {
			fmt.Fprintln(tw, "top product\t-")
		}
		fmt.Fprintf(tw, "located customers\t%d\n", snap.Located)

		fmt.Fprintln(tw, "\nSTATE\tMEAN\tSTD\tN\tCI")
		for _, s := range snap.RegionSpend {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%d\t%s\n", s.State, s.Mean, s.StdDev, s.Count, ciString(s))
		}

		fmt.Fprintln(tw, "\nCUSTOMER\tSTATE\tTOTAL")
		for _, c := range snap.TopSpenders {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", c.CustomerUniqueID, c.State, c.Total)
		}
	})
}

func writeCounts[N int | int64](w io.Writer, format string, counts map[string]N) error {
	return render(w, format, counts, func(tw *tabwriter.Writer) {
		for _, k := range sortedKeys(counts) {
			fmt.Fprintf(tw, "%s\t%d\n", k, counts[k])
		}
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ciString(s domain.RegionSpend) string {
	if s.CILow == nil || s.CIHigh == nil {
		return "-"
	}
	return fmt.Sprintf("[%.2f, %.2f]", *s.CILow, *s.CIHigh)
}

func categoryOrDash(c string) string {
	if c == "" {
		return "-"
	}
	return c
}
