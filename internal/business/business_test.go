package business

import "testing"

func TestRegionToken(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"Richmond, VA", "VA"},
		{"Charlottesville,VA", "VA"},
		{"Colorado Springs, CO", "CO"},
		{"Nashville, Davidson County, TN", "TN"},
		{"Denver", "Denver"},
		{"", ""},
		{"  Roanoke ,  Virginia  ", "Virginia"},
	}
	for _, tt := range tests {
		rec := Record{Location: tt.location}
		if got := rec.RegionToken(); got != tt.want {
			t.Errorf("RegionToken(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}

func TestIDStableAndDistinct(t *testing.T) {
	a := Record{Name: "Acme Plumbing", Website: "acme.com"}
	b := Record{Name: "Acme Plumbing", Website: "acme.net"}

	if a.ID() != a.ID() {
		t.Error("same record should produce same ID")
	}
	if a.ID() == b.ID() {
		t.Error("different websites should produce different IDs")
	}
	if len(a.ID()) != 32 {
		t.Errorf("expected 32-char hex id, got %d chars: %s", len(a.ID()), a.ID())
	}

	// Case differences should not split identities.
	c := Record{Name: "ACME PLUMBING", Website: "Acme.com"}
	if a.ID() != c.ID() {
		t.Error("ID should be case-insensitive over name and website")
	}
}

func TestSampleRecords(t *testing.T) {
	records := SampleRecords()
	if len(records) != 5 {
		t.Fatalf("expected 5 sample businesses, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Name == "" || rec.Location == "" || rec.Website == "" {
			t.Errorf("incomplete sample record: %+v", rec)
		}
		if rec.FoundedYear == 0 || rec.EstimatedRevenue == 0 {
			t.Errorf("sample record missing optional demo fields: %+v", rec)
		}
	}
}
