// Command folio prints a consolidated KRW portfolio report across the
// configured Korean exchanges.
//
// Usage:
//
//	folio [--config config.yaml]
//
// Credentials come from the environment (or a .env file):
//
//	UPBIT_ACCESS_KEY / UPBIT_SECRET_KEY
//	BITHUMB_ACCESS_KEY / BITHUMB_SECRET_KEY
//	COINONE_ACCESS_KEY / COINONE_SECRET_KEY
//	KORBIT_ACCESS_KEY / KORBIT_SECRET_KEY
//
// Exchanges without credentials are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/config"
	"github.com/hanjoon/cexfolio/internal/clients"
	"github.com/hanjoon/cexfolio/internal/render"
	"github.com/hanjoon/cexfolio/internal/services/pricer"
	"github.com/hanjoon/cexfolio/internal/services/report"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		log.Fatal(err)
	}

	var reports []report.ExchangeReport
	if !cfg.Upbit.Empty() {
		reports = append(reports, report.NewExchangeReport(
			clients.NewUpbit(cfg.Upbit.Key, cfg.Upbit.Secret),
			pricer.NewUpbitSource(), cfg.ExcludedCurrencies, logger))
	}
	if !cfg.Bithumb.Empty() {
		reports = append(reports, report.NewExchangeReport(
			clients.NewBithumb(cfg.Bithumb.Key, cfg.Bithumb.Secret),
			pricer.NewBithumbSource(), cfg.ExcludedCurrencies, logger))
	}
	if !cfg.Coinone.Empty() {
		reports = append(reports, report.NewExchangeReport(
			clients.NewCoinone(cfg.Coinone.Key, cfg.Coinone.Secret),
			pricer.NewCoinoneSource(), cfg.ExcludedCurrencies, logger))
	}
	if !cfg.Korbit.Empty() {
		reports = append(reports, report.NewExchangeReport(
			clients.NewKorbit(cfg.Korbit.Key, cfg.Korbit.Secret),
			pricer.NewKorbitSource(), cfg.ExcludedCurrencies, logger))
	}
	if len(reports) == 0 {
		log.Fatal("no exchange credentials configured")
	}

	lines := report.BuildAll(context.Background(), reports, logger)
	fmt.Println(render.Table(lines, true))
	fmt.Printf("portfolio total: %s KRW\n", render.GrandTotal(lines).StringFixed(0))
}
