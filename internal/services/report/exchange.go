package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/internal/clients"
	"github.com/hanjoon/cexfolio/internal/domain"
	"github.com/hanjoon/cexfolio/internal/services/balance"
	"github.com/hanjoon/cexfolio/internal/services/pricer"
)

// NewExchangeReport wires one exchange's balances to its own ticker
// prices: the exchange's held currencies, minus the excluded codes, each
// priced through source.
func NewExchangeReport(client clients.Exchange, source pricer.Source, excluded []string, logger *zap.Logger) ExchangeReport {
	builder := NewBuilder(pricer.NewResolver(logger, source), logger)
	return ExchangeReport{
		Name: client.Name(),
		Build: func(ctx context.Context) ([]domain.ReportLine, error) {
			balances, err := client.Balances(ctx, nil)
			if err != nil {
				return nil, err
			}
			return builder.Build(ctx, balance.NonzeroOnly(balances, excluded)), nil
		},
	}
}
