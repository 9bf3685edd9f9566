package business

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the canonical column order for exports. Imports match columns
// by header name instead, so extra or reordered columns are fine.
var csvHeader = []string{
	"name", "industry", "location", "website",
	"founded_year", "estimated_revenue", "employees",
}

// ReadCSV parses business records from r. The first row must be a header;
// unknown columns are ignored and missing optional values are left at their
// zero value. Rows without a name are rejected.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("csv header missing required column %q", "name")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}

		rec := Record{
			Name:     field(row, "name"),
			Industry: field(row, "industry"),
			Location: field(row, "location"),
			Website:  field(row, "website"),
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("csv line %d: name is required", line)
		}
		if v := field(row, "founded_year"); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: founded_year %q: %w", line, v, err)
			}
			rec.FoundedYear = year
		}
		if v := field(row, "estimated_revenue"); v != "" {
			rev, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: estimated_revenue %q: %w", line, v, err)
			}
			if rev < 0 {
				return nil, fmt.Errorf("csv line %d: estimated_revenue must not be negative", line)
			}
			rec.EstimatedRevenue = rev
		}
		if v := field(row, "employees"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: employees %q: %w", line, v, err)
			}
			rec.Employees = n
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteCSV writes records to w with the canonical header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.Industry,
			rec.Location,
			rec.Website,
			"",
			"",
			"",
		}
		if rec.FoundedYear != 0 {
			row[4] = strconv.Itoa(rec.FoundedYear)
		}
		if rec.EstimatedRevenue != 0 {
			row[5] = strconv.FormatFloat(rec.EstimatedRevenue, 'f', -1, 64)
		}
		if rec.Employees != 0 {
			row[6] = strconv.Itoa(rec.Employees)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
