package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/partsdesk/pricedb/internal/repository"
	"github.com/partsdesk/pricedb/internal/utils"
)

// storeHeader is the fixed header of a store-query report.
const storeHeader = "Part number" + Delimiter + "Cost, $" + Delimiter + "W/Delivery" + Delimiter + "Date" + Delimiter + "Supplier"

// Engine answers part-number lookups against the record store and writes the
// cheapest quotation per pattern as one report row.
type Engine struct {
	prices *repository.PriceRepository
	costs  CostTable
}

// NewEngine constructs an Engine.
func NewEngine(prices *repository.PriceRepository, costs CostTable) *Engine {
	return &Engine{prices: prices, costs: costs}
}

// QueryFromStore reads one part-number pattern per line from queryPath and
// writes the report to outPath. Hyphens are stripped from each pattern before
// matching; the report row still shows the pattern as queried. Patterns with
// no match produce no row.
func (e *Engine) QueryFromStore(ctx context.Context, queryPath, outPath string) error {
	start := time.Now()

	in, err := os.Open(queryPath)
	if err != nil {
		return fmt.Errorf("open query file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, storeHeader)

	scanner := bufio.NewScanner(in)
	matched := 0
	for scanner.Scan() {
		pattern := strings.TrimSpace(scanner.Text())
		if pattern == "" {
			continue
		}
		quote, err := e.prices.CheapestByPartNumber(ctx, strings.ReplaceAll(pattern, "-", ""))
		if err != nil {
			if errors.Is(err, utils.ErrNoQuotation) {
				continue
			}
			return fmt.Errorf("lookup %q: %w", pattern, err)
		}
		fmt.Fprintln(w, strings.Join([]string{
			pattern,
			e.costs.Cost(quote.Price),
			e.costs.CostWithWeight(quote.Price, quote.Weight),
			quote.PriceDate.Format("2006-01-02"),
			quote.SupplierTitle,
		}, Delimiter))
		matched++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read query file: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info().
		Int("matched", matched).
		Dur("elapsed", time.Since(start)).
		Msg("store query completed")
	return nil
}
