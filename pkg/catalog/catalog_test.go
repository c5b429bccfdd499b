package catalog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sponsor-letters/pkg/models"
)

func intPtr(n int) *int { return &n }

func smallCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		[]models.Event{
			{Name: "2025 ESMO USA West", CityState: "Colorado Springs, CO", Venue: "The Antlers", DefaultTier: models.BoothStandard2D},
			{Name: "2026 ASCO Direct Denver", CityState: "Denver, CO", Venue: "Denver, CO", DefaultTier: models.BoothStandard1D, ExpectedAttendance: intPtr(60)},
			{Name: "Regional Summit", CityState: "Boston, MA"},
		},
		map[models.BoothTier]float64{models.BoothStandard1D: 5000, models.BoothStandard2D: 7500},
		AddOnTable{Year: 2025, AddOns: []models.AddOn{{Key: models.AddOnChargingStations, Label: "Charging", Price: 2000}}},
		AddOnTable{Year: 2026, AddOns: []models.AddOn{{Key: models.AddOnChargingStations, Label: "Charging", Price: 3000}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 64 {
		t.Fatalf("got %d events, want 64", c.Len())
	}
	if _, ok := c.FindByName("2026 ASCO Direct Denver"); !ok {
		t.Fatal("expected 2026 ASCO Direct Denver in default catalog")
	}
	if p, _ := c.BoothPrice(models.BoothStandard2D); p != 7500 {
		t.Fatalf("standard_2d: got %v, want 7500", p)
	}
	if a, _ := c.AddOn(2026, models.AddOnChargingStations); a.Price != 3000 {
		t.Fatalf("charging 2026: got %v, want 3000", a.Price)
	}
}

func TestAddOn_YearFallback(t *testing.T) {
	c := smallCatalog(t)
	for _, year := range []int{2025, 2024, 2030, 0, -1} {
		a, ok := c.AddOn(year, models.AddOnChargingStations)
		if !ok || a.Price != 2000 {
			t.Fatalf("year %d: got %v (ok=%v), want older table price 2000", year, a.Price, ok)
		}
	}
}

func TestBoothPrice_NoneAndUnknown(t *testing.T) {
	c := smallCatalog(t)
	if p, ok := c.BoothPrice(models.BoothNone); ok || p != 0 {
		t.Fatalf("none: got %v ok=%v", p, ok)
	}
	if p, ok := c.BoothPrice("gold"); ok || p != 0 {
		t.Fatalf("unknown: got %v ok=%v", p, ok)
	}
}

func TestEventYear(t *testing.T) {
	c := smallCatalog(t)
	cases := map[string]int{
		"2026 ASCO Direct Denver":    2026,
		"ESMO in Focus 2026: Breast": 2026,
		"2025 ESMO USA West":         2025,
		"Regional Summit":            2025,
	}
	for name, want := range cases {
		if got := c.YearOf(name); got != want {
			t.Fatalf("%q: got %d, want %d", name, got, want)
		}
	}
	if n := len(c.EventsByYear(2025)); n != 2 {
		t.Fatalf("got %d events for 2025, want 2", n)
	}
}

func TestEvents_ReturnsCopies(t *testing.T) {
	c := smallCatalog(t)
	evs := c.Events()
	evs[0].Name = "mutated"
	*evs[1].ExpectedAttendance = 999

	again := c.Events()
	if again[0].Name != "2025 ESMO USA West" {
		t.Fatalf("catalog name was mutated: %q", again[0].Name)
	}
	if *again[1].ExpectedAttendance != 60 {
		t.Fatalf("catalog attendance was mutated: %d", *again[1].ExpectedAttendance)
	}
}

func TestSearch(t *testing.T) {
	c := smallCatalog(t)
	got := c.Search("antlers")
	if len(got) != 1 || got[0].Name != "2025 ESMO USA West" {
		t.Fatalf("unexpected search result: %+v", got)
	}
	if got := c.Search("boston"); len(got) != 1 {
		t.Fatalf("got %d results for boston, want 1", len(got))
	}
}

func TestEventsByYear(t *testing.T) {
	c := smallCatalog(t)
	// un nom sans année retombe sur l'ancienne grille
	if got := c.EventsByYear(2025); len(got) != 2 || got[1].Name != "Regional Summit" {
		t.Fatalf("2025: unexpected events %+v", got)
	}
	if got := c.EventsByYear(2026); len(got) != 1 || got[0].Name != "2026 ASCO Direct Denver" {
		t.Fatalf("2026: unexpected events %+v", got)
	}
	if got := c.EventsByYear(2030); len(got) != 0 {
		t.Fatalf("2030: got %d events, want 0", len(got))
	}
}

func TestFindByName_Exact(t *testing.T) {
	c := smallCatalog(t)
	if _, ok := c.FindByName("2026 asco direct denver"); ok {
		t.Fatal("FindByName must be case-sensitive")
	}
	e, ok := c.FindByName("2026 ASCO Direct Denver")
	if !ok || *e.ExpectedAttendance != 60 {
		t.Fatalf("got %+v (ok=%v)", e, ok)
	}
}

func TestNew_Invalid(t *testing.T) {
	older := AddOnTable{Year: 2025}
	newer := AddOnTable{Year: 2026}

	cases := []struct {
		name   string
		events []models.Event
		booths map[models.BoothTier]float64
		older  AddOnTable
	}{
		{"empty name", []models.Event{{Name: "  "}}, nil, older},
		{"duplicate", []models.Event{{Name: "A"}, {Name: "A"}}, nil, older},
		{"bad tier", []models.Event{{Name: "A", DefaultTier: "gold"}}, nil, older},
		{"negative booth", nil, map[models.BoothTier]float64{models.BoothPremier: -1}, older},
		{"same years", nil, nil, AddOnTable{Year: 2026}},
		{"negative add-on", nil, nil, AddOnTable{Year: 2025, AddOns: []models.AddOn{{Key: "x", Price: -5}}}},
	}
	for _, tc := range cases {
		_, err := New(tc.events, tc.booths, tc.older, newer)
		if !errors.Is(err, ErrInvalidCatalog) {
			t.Fatalf("%s: got %v, want ErrInvalidCatalog", tc.name, err)
		}
	}
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"older_year":2025,"newer_year":2026,"oops":1}`))
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("got %v, want ErrInvalidCatalog", err)
	}
}

func TestStore_Swap(t *testing.T) {
	first := smallCatalog(t)
	s := NewStore(first)
	if s.Load() != first {
		t.Fatal("expected first snapshot")
	}
	second, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if old := s.Swap(second); old != first {
		t.Fatal("swap should return previous snapshot")
	}
	if s.Load() != second {
		t.Fatal("expected second snapshot")
	}
}

func TestParseEventDate(t *testing.T) {
	cases := map[string]string{
		"June 12, 2026":               "2026-06-12",
		"June 13-14, 2026":            "2026-06-13",
		"November 1–2, 2025":          "2025-11-01",
		"January 31-February 1, 2026": "2026-01-31",
		"  September 24, 2026 ":       "2026-09-24",
	}
	for in, want := range cases {
		got, ok := ParseEventDate(in)
		if !ok || got.Format("2006-01-02") != want {
			t.Fatalf("ParseEventDate(%q): got %v (ok=%v), want %s", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "TBD", "Spring 2026", "June 13-14"} {
		if _, ok := ParseEventDate(in); ok {
			t.Fatalf("ParseEventDate(%q) should fail", in)
		}
	}
}

func TestUpcoming(t *testing.T) {
	c, err := New(
		[]models.Event{
			{Name: "2026 Late", DateText: "September 24, 2026"},
			{Name: "2025 Past", DateText: "October 9, 2025"},
			{Name: "2026 Soon", DateText: "March 4-5, 2026"},
			{Name: "2026 Unknown", DateText: "TBD"},
		},
		nil,
		AddOnTable{Year: 2025},
		AddOnTable{Year: 2026},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.Upcoming(time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC))
	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	if want := []string{"2026 Soon", "2026 Late"}; strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestUpcoming_DefaultCatalogDatesParse(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range c.Events() {
		if _, ok := ParseEventDate(e.DateText); !ok {
			t.Fatalf("unreadable date %q for %q", e.DateText, e.Name)
		}
	}
}
