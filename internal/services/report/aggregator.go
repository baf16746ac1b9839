package report

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// Aggregate merges per-exchange reports into one cross-exchange table.
// Exchanges with empty reports are skipped entirely (no zero-row
// placeholder), every line is tagged with its exchange, and the combined
// result is re-ranked by total across exchanges. Exchanges are
// concatenated in name order so ties break deterministically.
func Aggregate(reports map[string][]domain.ReportLine) []domain.ReportLine {
	names := make([]string, 0, len(reports))
	for name := range reports {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined []domain.ReportLine
	for _, name := range names {
		for _, line := range reports[name] {
			line.Exchange = name
			combined = append(combined, line)
		}
	}
	sortByTotal(combined)
	return combined
}

// ExchangeReport names an exchange and how to build its report.
type ExchangeReport struct {
	Name  string
	Build func(ctx context.Context) ([]domain.ReportLine, error)
}

// BuildAll builds every exchange's report concurrently and aggregates the
// results. One exchange failing (its auth refresh included) only costs
// that exchange's section: the failure is logged as a warning and the
// remaining exchanges still contribute.
func BuildAll(ctx context.Context, reports []ExchangeReport, logger *zap.Logger) []domain.ReportLine {
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		byExchange = make(map[string][]domain.ReportLine, len(reports))
	)
	for _, r := range reports {
		wg.Add(1)
		go func(r ExchangeReport) {
			defer wg.Done()
			lines, err := r.Build(ctx)
			if err != nil {
				logger.Warn("exchange report failed, continuing without it",
					zap.String("exchange", r.Name), zap.Error(err))
				return
			}
			mu.Lock()
			byExchange[r.Name] = lines
			mu.Unlock()
		}(r)
	}
	wg.Wait()
	return Aggregate(byExchange)
}
