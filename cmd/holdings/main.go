// Command holdings prices an externally held portfolio through the
// exchange price cascade. Held amounts come from CRYPTO_<SYMBOL>
// environment variables (or a .env file), e.g.:
//
//	CRYPTO_BTC=1.001830
//	CRYPTO_SOL=123.852
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/config"
	"github.com/hanjoon/cexfolio/internal/render"
	"github.com/hanjoon/cexfolio/internal/services/pricer"
	"github.com/hanjoon/cexfolio/internal/services/report"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load("", logger)
	if err != nil {
		log.Fatal(err)
	}
	if len(cfg.Holdings) == 0 {
		log.Fatal("no CRYPTO_* holdings configured")
	}

	resolver := pricer.NewCascade(logger)
	lines := report.Holdings(context.Background(), cfg.Holdings, resolver)

	fmt.Println(render.Table(lines, true))
	fmt.Printf("portfolio total: %s KRW\n", render.GrandTotal(lines).StringFixed(0))
}
