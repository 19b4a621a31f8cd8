package report

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/partsdesk/pricedb/pkg/raonline"
)

// OfferSource looks up all known offers for one part-number pattern. It is
// satisfied by *raonline.Client.
type OfferSource interface {
	GetPartInfoItems(ctx context.Context, partNumber, refID string) ([]raonline.PartInfoItem, error)
}

// PollOptions parameterize one web-service report run.
type PollOptions struct {
	QueryPath  string
	OutputPath string
	TitlesPath string // optional allow-list of warehouse titles
	MaxAgeDays int    // optional; 0 disables the age filter
	Group      bool   // collapse each query's offers into one averaged row
}

// Poller queries the remote catalog one part number at a time and streams the
// retained offers into a delimited report.
type Poller struct {
	source OfferSource
	now    func() time.Time
}

// NewPoller constructs a Poller over the given offer source.
func NewPoller(source OfferSource) *Poller {
	return &Poller{source: source, now: time.Now}
}

// PollAndReport issues one remote lookup per query line and writes the report.
// Calls are strictly sequential; a failed remote call aborts the whole run.
// The header line is written once, right before the first body row, so a run
// that retains nothing produces an empty file.
func (p *Poller) PollAndReport(ctx context.Context, opts PollOptions) error {
	start := time.Now()
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	titles, err := loadTitles(opts.TitlesPath)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.QueryPath)
	if err != nil {
		return fmt.Errorf("open query file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	headerPrinted := false
	writeBody := func(line string) {
		if !headerPrinted {
			fmt.Fprintln(w, OfferHeader(opts.Group))
			headerPrinted = true
		}
		fmt.Fprintln(w, line)
	}

	today := dateOf(p.now())
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		pattern := strings.TrimSpace(scanner.Text())
		if pattern == "" {
			continue
		}

		offers, err := p.source.GetPartInfoItems(ctx, pattern, runID)
		if err != nil {
			return fmt.Errorf("remote lookup %q: %w", pattern, err)
		}

		kept := offers[:0:0]
		for _, o := range offers {
			if titles != nil && !titles[o.WarehouseTitle()] {
				continue
			}
			if opts.MaxAgeDays > 0 && offerAgeDays(today, o.UpdateDate) > opts.MaxAgeDays {
				continue
			}
			kept = append(kept, o)
		}

		if opts.Group {
			if len(kept) > 0 {
				writeBody(Aggregate(kept).GroupRow())
			}
		} else {
			for _, o := range kept {
				writeBody(OfferRow(o))
			}
		}

		logger.Info().
			Str("pattern", pattern).
			Int("received", len(offers)).
			Int("kept", len(kept)).
			Msg("polled part number")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read query file: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info().Dur("elapsed", time.Since(start)).Msg("web service query completed")
	return nil
}

// loadTitles reads the optional warehouse-title allow-list. A missing path
// returns a nil set, which disables the filter.
func loadTitles(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open titles file: %w", err)
	}
	defer f.Close()

	titles := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if t := strings.TrimSpace(scanner.Text()); t != "" {
			titles[t] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read titles file: %w", err)
	}
	return titles, nil
}

// offerAgeDays counts whole days between the offer's last update and today,
// comparing calendar dates, not timestamps.
func offerAgeDays(today, updated time.Time) int {
	return int(today.Sub(dateOf(updated)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
