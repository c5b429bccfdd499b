package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sponsor-letters/pkg/activity"
	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/letters"
)

func newTestApp(t *testing.T, withLog bool) (*app, *bytes.Buffer) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	var buf bytes.Buffer
	a := &app{
		catalogs: catalog.NewStore(c),
		renderer: letters.NewRenderer(letters.DefaultIssuer),
		out:      &buf,
		now:      func() time.Time { return time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC) },
	}
	if withLog {
		s, err := activity.Open(filepath.Join(t.TempDir(), "activity.db"), 0)
		if err != nil {
			t.Fatalf("open activity log: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		a.activity = s
	}
	return a, &buf
}

func TestRunPrice(t *testing.T) {
	a, out := newTestApp(t, false)
	err := a.run(context.Background(), options{
		mode:     "price",
		event:    "2026 ASCO Direct Denver",
		addOns:   "program_ad_full,charging_stations",
		discount: "pct10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Pricing year     2026", "Subtotal         $12,500.00", "Final (rounded)  $11,250.00"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunMatch(t *testing.T) {
	a, out := newTestApp(t, false)
	if err := a.run(context.Background(), options{mode: "match", event: "2026 Best of ASCO Denver"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "normalized ; 2026 ASCO Direct Denver") {
		t.Fatalf("got %q", out)
	}
}

func TestRunLetter_RecordsActivity(t *testing.T) {
	a, _ := newTestApp(t, true)
	dir := t.TempDir()
	err := a.run(context.Background(), options{
		mode:    "letter",
		event:   "ASCO Direct Denver",
		company: "Acme Oncology",
		doc:     "loa",
		out:     dir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "LOA_Acme_Oncology_2026_ASCO_Direct_Denver.txt"))
	if err != nil {
		t.Fatalf("letter not written: %v", err)
	}
	if !strings.Contains(string(data), "• Total Sponsorship Amount: $7,500.00") {
		t.Fatalf("unexpected letter:\n%s", data)
	}

	entries, err := a.activity.Recent(1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("got %v, %v", entries, err)
	}
	if entries[0].CompanyName != "Acme Oncology" || entries[0].TotalCost != 7500 || entries[0].Mode != activity.ModeSingle {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestRun_Usage(t *testing.T) {
	a, _ := newTestApp(t, false)
	for _, o := range []options{
		{mode: "nope"},
		{mode: "match"},
		{mode: "letter", event: "2026 ASCO Direct Denver", doc: "memo"},
		{mode: "letter", event: "2026 ASCO Direct Denver", format: "docx"},
		{mode: "letter", event: "2026 ASCO Direct Denver", format: "txt,pdf"},
	} {
		if err := a.run(context.Background(), o); !errors.Is(err, errUsage) {
			t.Fatalf("%+v: got %v, want errUsage", o, err)
		}
	}
}

func TestRunEvents_Search(t *testing.T) {
	a, out := newTestApp(t, false)
	if err := a.run(context.Background(), options{mode: "events", event: "asco direct denver"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "2026 ASCO Direct Denver ; ") {
		t.Fatalf("got %q", out)
	}
}

func TestRunLetter_TextAndPDF(t *testing.T) {
	a, _ := newTestApp(t, false)
	dir := t.TempDir()
	err := a.run(context.Background(), options{
		mode:    "letter",
		event:   "2026 ASCO Direct Denver",
		company: "Acme Oncology",
		out:     dir,
		format:  "txt,pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "LOR_Acme_Oncology_2026_ASCO_Direct_Denver.txt")); err != nil {
		t.Fatalf("text letter not written: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "LOR_Acme_Oncology_2026_ASCO_Direct_Denver.pdf"))
	if err != nil {
		t.Fatalf("pdf letter not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a PDF document")
	}
}

func TestRunLetter_PDFToFile(t *testing.T) {
	a, _ := newTestApp(t, false)
	path := filepath.Join(t.TempDir(), "letter.pdf")
	if err := a.run(context.Background(), options{mode: "letter", event: "2026 ASCO Direct Denver", out: path, format: "pdf"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("got %d bytes, err=%v", len(data), err)
	}
}

func TestRunEvents_Upcoming(t *testing.T) {
	a, out := newTestApp(t, false)
	if err := a.run(context.Background(), options{mode: "events", upcoming: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) == 0 || strings.Contains(out.String(), ", 2025 ;") {
		t.Fatalf("past events listed:\n%s", out)
	}
	if !strings.Contains(lines[0], "March 5, 2026") {
		t.Fatalf("first upcoming event should be on March 5, 2026, got %q", lines[0])
	}
}
