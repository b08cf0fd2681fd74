package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// row gives typed, header-addressed access to the current record.
type row struct {
	file   string
	line   int
	index  map[string]int
	record []string
}

func (r *row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *row) fail(col, value string, err error) error {
	return fmt.Errorf("%s:%d: column %s: invalid value %q: %w", r.file, r.line, col, value, err)
}

func (r *row) float(col string) (float64, error) {
	s := r.str(col)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.fail(col, s, err)
	}
	return v, nil
}

// optFloat parses an optional numeric column; empty means zero.
func (r *row) optFloat(col string) (float64, error) {
	if r.str(col) == "" {
		return 0, nil
	}
	return r.float(col)
}

func (r *row) int(col string) (int, error) {
	s := r.str(col)
	v, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write integral columns as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, r.fail(col, s, err)
		}
		return int(f), nil
	}
	return v, nil
}

func (r *row) optInt(col string) (int, error) {
	if r.str(col) == "" {
		return 0, nil
	}
	return r.int(col)
}

// time parses a timestamp column. Empty values are missing and yield the
// zero time.
func (r *row) time(col string) (time.Time, error) {
	s := r.str(col)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		if t2, err2 := time.Parse(domain.DateLayout, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, r.fail(col, s, err)
	}
	return t, nil
}

// readTable streams every record of a CSV file into fn. required lists
// the header names that must be present.
func readTable(name string, src io.Reader, required []string, fn func(*row) error) error {
	cr := csv.NewReader(src)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file", name)
		}
		return fmt.Errorf("%s: read header: %w", name, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing columns: %s", name, strings.Join(missing, ", "))
	}

	r := &row{file: name, line: 1, index: index}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r.line, _ = cr.FieldPos(0)
		r.record = rec
		if err := fn(r); err != nil {
			return err
		}
	}
}
