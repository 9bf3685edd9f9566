package cache

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/score"
	"github.com/CohensCoding/Succession/internal/website"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestUpsertAndGetBusinesses(t *testing.T) {
	s, _ := testStore(t)
	records := business.SampleRecords()

	if err := s.UpsertBusinesses(records); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetBusinesses(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d businesses, got %d", len(records), len(got))
	}
	// Ordered by name.
	if got[0].Name != "Apex Construction Group" {
		t.Errorf("expected name order, got %q first", got[0].Name)
	}
}

func TestUpsertRefreshesExisting(t *testing.T) {
	s, _ := testStore(t)
	rec := business.Record{Name: "Acme Plumbing", Website: "acme.com", EstimatedRevenue: 1000000}

	if err := s.UpsertBusinesses([]business.Record{rec}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	rec.EstimatedRevenue = 2500000
	if err := s.UpsertBusinesses([]business.Record{rec}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetBusinesses(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 business after re-upsert, got %d", len(got))
	}
	if got[0].EstimatedRevenue != 2500000 {
		t.Errorf("revenue = %.0f, want 2500000", got[0].EstimatedRevenue)
	}
}

func TestGetBusinessesSearch(t *testing.T) {
	s, _ := testStore(t)
	if err := s.UpsertBusinesses(business.SampleRecords()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetBusinesses(QueryOpts{Search: "HVAC"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Blue Ridge HVAC Services" {
		t.Errorf("unexpected search result: %+v", got)
	}
}

func TestSaveAndGetAssessments(t *testing.T) {
	s, _ := testStore(t)
	rec := business.Record{
		Name:             "Blue Ridge HVAC Services",
		Industry:         "HVAC Contracting",
		Location:         "Charlottesville, VA",
		Website:          "blueridgehvac.net",
		FoundedYear:      1995,
		EstimatedRevenue: 3200000,
		Employees:        18,
	}
	if err := s.UpsertBusinesses([]business.Record{rec}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	a := Assessment{
		Record: rec,
		Signals: website.Signals{
			Accessible:      true,
			Title:           "Blue Ridge HVAC",
			LatestCopyright: 2019,
			LastUpdated:     time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
			TextLength:      4200,
		},
		Result: score.Result{
			Score:    91.3,
			RawScore: 105,
			Category: score.High,
			Priority: score.PriorityHigh,
			Factors:  []string{"Established business (29 years)", "Copyright last updated 2019"},
		},
		Summary:   "Worth a respectful call.",
		ScannedAt: time.Now(),
	}
	if err := s.SaveAssessment(a); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetAssessments()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(got))
	}

	g := got[0]
	if g.Record.Name != rec.Name || g.Record.EstimatedRevenue != rec.EstimatedRevenue {
		t.Errorf("record mismatch: %+v", g.Record)
	}
	if !g.Signals.Accessible || g.Signals.LatestCopyright != 2019 || g.Signals.TextLength != 4200 {
		t.Errorf("signals mismatch: %+v", g.Signals)
	}
	if !g.Signals.LastUpdated.Equal(a.Signals.LastUpdated) {
		t.Errorf("last updated = %v, want %v", g.Signals.LastUpdated, a.Signals.LastUpdated)
	}
	if g.Result.Score != 91.3 || g.Result.RawScore != 105 || g.Result.Category != score.High {
		t.Errorf("result mismatch: %+v", g.Result)
	}
	if g.Result.Priority != score.PriorityHigh {
		t.Errorf("priority not rehydrated: %q", g.Result.Priority)
	}
	if !reflect.DeepEqual(g.Result.Factors, a.Result.Factors) {
		t.Errorf("factors = %v, want %v", g.Result.Factors, a.Result.Factors)
	}
	if g.Summary != a.Summary {
		t.Errorf("summary = %q", g.Summary)
	}
}

func TestSaveAssessmentReplacesPrevious(t *testing.T) {
	s, _ := testStore(t)
	rec := business.Record{Name: "Acme", Website: "acme.com"}
	if err := s.UpsertBusinesses([]business.Record{rec}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	first := Assessment{
		Record:    rec,
		Signals:   website.Signals{Accessible: false, Error: "timeout"},
		Result:    score.Result{Score: 17.4, RawScore: 20, Category: score.Low},
		ScannedAt: time.Now().Add(-time.Hour),
	}
	if err := s.SaveAssessment(first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := first
	second.Signals = website.Signals{Accessible: true}
	second.Result = score.Result{Score: 0, RawScore: 0, Category: score.Low}
	second.ScannedAt = time.Now()
	if err := s.SaveAssessment(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.GetAssessments()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected latest assessment only, got %d", len(got))
	}
	if !got[0].Signals.Accessible {
		t.Error("expected the replacing assessment, got the first")
	}
}

func TestGetAssessmentsOrderedByScore(t *testing.T) {
	s, _ := testStore(t)
	records := []business.Record{
		{Name: "Low Co", Website: "low.com"},
		{Name: "High Co", Website: "high.com"},
	}
	if err := s.UpsertBusinesses(records); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	for i, sc := range []float64{20, 95} {
		a := Assessment{
			Record:    records[i],
			Signals:   website.Signals{Accessible: true},
			Result:    score.Result{Score: sc, Category: score.Low},
			ScannedAt: time.Now(),
		}
		if err := s.SaveAssessment(a); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := s.GetAssessments()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got[0].Record.Name != "High Co" {
		t.Errorf("expected highest score first, got %q", got[0].Record.Name)
	}
}

func TestStats(t *testing.T) {
	s, path := testStore(t)
	if err := s.UpsertBusinesses(business.SampleRecords()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	businesses, assessed, size, err := s.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if businesses != 5 {
		t.Errorf("businesses = %d, want 5", businesses)
	}
	if assessed != 0 {
		t.Errorf("assessed = %d, want 0", assessed)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
