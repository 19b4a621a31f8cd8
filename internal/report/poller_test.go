package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/partsdesk/pricedb/pkg/raonline"
)

type fakeSource struct {
	offers map[string][]raonline.PartInfoItem
	calls  []string
}

func (f *fakeSource) GetPartInfoItems(_ context.Context, partNumber, _ string) ([]raonline.PartInfoItem, error) {
	f.calls = append(f.calls, partNumber)
	return f.offers[partNumber], nil
}

func writeLines(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readReport(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := strings.TrimRight(string(raw), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func pollerAt(src OfferSource, today time.Time) *Poller {
	p := NewPoller(src)
	p.now = func() time.Time { return today }
	return p
}

func agedOffer(updated time.Time) raonline.PartInfoItem {
	o := testOffer("10.00")
	o.UpdateDate = updated
	return o
}

func TestPollAndReport_UngroupedOneRowPerOffer(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{offers: map[string][]raonline.PartInfoItem{
		"4901PN": {testOffer("10.00"), testOffer("20.00")},
	}}
	queryPath := writeLines(t, dir, "query.txt", "4901PN")
	outPath := filepath.Join(dir, "out.csv")

	p := pollerAt(src, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err := p.PollAndReport(context.Background(), PollOptions{
		QueryPath: queryPath, OutputPath: outPath,
	}); err != nil {
		t.Fatalf("PollAndReport error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != OfferHeader(false) {
		t.Fatalf("unexpected header %q", lines[0])
	}
}

func TestPollAndReport_GroupedOneRowPerQueryLine(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{offers: map[string][]raonline.PartInfoItem{
		"A1": {testOffer("10.00"), testOffer("20.00"), testOffer("30.00")},
		"B2": {testOffer("5.00")},
	}}
	queryPath := writeLines(t, dir, "query.txt", "A1", "B2")
	outPath := filepath.Join(dir, "out.csv")

	p := pollerAt(src, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err := p.PollAndReport(context.Background(), PollOptions{
		QueryPath: queryPath, OutputPath: outPath, Group: true,
	}); err != nil {
		t.Fatalf("PollAndReport error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 grouped rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "20,00") {
		t.Fatalf("expected averaged price 20,00 in %q", lines[1])
	}
}

func TestPollAndReport_AgeFilterBoundary(t *testing.T) {
	today := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	stale := agedOffer(today.AddDate(0, 0, -31))

	for _, tc := range []struct {
		name    string
		maxAge  int
		wantRow bool
	}{
		{"excluded at max age 30", 30, false},
		{"included at max age 31", 31, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			src := &fakeSource{offers: map[string][]raonline.PartInfoItem{"A1": {stale}}}
			queryPath := writeLines(t, dir, "query.txt", "A1")
			outPath := filepath.Join(dir, "out.csv")

			p := pollerAt(src, today)
			if err := p.PollAndReport(context.Background(), PollOptions{
				QueryPath: queryPath, OutputPath: outPath, MaxAgeDays: tc.maxAge,
			}); err != nil {
				t.Fatalf("PollAndReport error: %v", err)
			}

			lines := readReport(t, outPath)
			if tc.wantRow && len(lines) != 2 {
				t.Fatalf("expected header + 1 row, got %d lines", len(lines))
			}
			if !tc.wantRow && len(lines) != 0 {
				t.Fatalf("expected empty report, got %d lines", len(lines))
			}
		})
	}
}

func TestPollAndReport_TitleFilter(t *testing.T) {
	dir := t.TempDir()
	allowed := testOffer("10.00") // RA-TY-77
	blocked := testOffer("1.00")
	blocked.ManufacturerShortName = "XX"

	src := &fakeSource{offers: map[string][]raonline.PartInfoItem{"A1": {allowed, blocked}}}
	queryPath := writeLines(t, dir, "query.txt", "A1")
	titlesPath := writeLines(t, dir, "titles.txt", "RA-TY-77")
	outPath := filepath.Join(dir, "out.csv")

	p := pollerAt(src, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err := p.PollAndReport(context.Background(), PollOptions{
		QueryPath: queryPath, OutputPath: outPath, TitlesPath: titlesPath,
	}); err != nil {
		t.Fatalf("PollAndReport error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if strings.Contains(lines[1], "XX") {
		t.Fatalf("offer outside the allow-list leaked through: %q", lines[1])
	}
}

func TestPollAndReport_NoSurvivorsMeansNoHeader(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{offers: map[string][]raonline.PartInfoItem{}}
	queryPath := writeLines(t, dir, "query.txt", "NOPE", "ALSO-NOPE")
	outPath := filepath.Join(dir, "out.csv")

	p := pollerAt(src, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err := p.PollAndReport(context.Background(), PollOptions{
		QueryPath: queryPath, OutputPath: outPath, Group: true,
	}); err != nil {
		t.Fatalf("PollAndReport error: %v", err)
	}

	if lines := readReport(t, outPath); len(lines) != 0 {
		t.Fatalf("expected completely empty report, got %v", lines)
	}
	if len(src.calls) != 2 {
		t.Fatalf("expected one remote call per query line, got %v", src.calls)
	}
}

func TestOfferAgeDays_ComparesCalendarDates(t *testing.T) {
	today := dateOf(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC))
	updated := time.Date(2026, 8, 30, 0, 5, 0, 0, time.UTC)
	if got := offerAgeDays(today, updated); got != 1 {
		t.Fatalf("expected age 1 day, got %d", got)
	}
}
