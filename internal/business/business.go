package business

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Record holds the metadata for a single business. The optional fields use
// their zero value to mean "not provided": a FoundedYear of 0 skips the age
// rules, an EstimatedRevenue of 0 never lands in the target range, and
// Employees is descriptive only.
type Record struct {
	Name             string
	Industry         string
	Location         string
	Website          string
	FoundedYear      int
	EstimatedRevenue float64
	Employees        int
}

// ID derives a stable identifier from name and website so re-imports and
// re-scans address the same row.
func (r Record) ID() string {
	h := sha256.Sum256([]byte(strings.ToLower(r.Name) + "|" + strings.ToLower(r.Website)))
	return fmt.Sprintf("%x", h[:16])
}

// RegionToken returns the trimmed text after the last comma in Location,
// e.g. "Richmond, VA" -> "VA". Locations without a comma return the whole
// string, which keeps single-token locations filterable.
func (r Record) RegionToken() string {
	loc := r.Location
	if i := strings.LastIndex(loc, ","); i >= 0 {
		loc = loc[i+1:]
	}
	return strings.TrimSpace(loc)
}

// SampleRecords returns the built-in demo data set.
func SampleRecords() []Record {
	return []Record{
		{
			Name:             "Richmond Environmental Solutions",
			Industry:         "Environmental Remediation",
			Location:         "Richmond, VA",
			Website:          "richmondenviro.com",
			FoundedYear:      1998,
			EstimatedRevenue: 4500000,
			Employees:        25,
		},
		{
			Name:             "Blue Ridge HVAC Services",
			Industry:         "HVAC Contracting",
			Location:         "Charlottesville, VA",
			Website:          "blueridgehvac.net",
			FoundedYear:      1995,
			EstimatedRevenue: 3200000,
			Employees:        18,
		},
		{
			Name:             "Denver Data Recovery Inc",
			Industry:         "IT Services",
			Location:         "Denver, CO",
			Website:          "denverdatarecovery.com",
			FoundedYear:      2001,
			EstimatedRevenue: 2800000,
			Employees:        12,
		},
		{
			Name:             "Tennessee Trucking Co",
			Industry:         "Transportation & Logistics",
			Location:         "Nashville, TN",
			Website:          "tntrucking.com",
			FoundedYear:      1989,
			EstimatedRevenue: 8500000,
			Employees:        45,
		},
		{
			Name:             "Apex Construction Group",
			Industry:         "General Contracting",
			Location:         "Colorado Springs, CO",
			Website:          "apexconstruct.biz",
			FoundedYear:      1992,
			EstimatedRevenue: 6200000,
			Employees:        32,
		},
	}
}
