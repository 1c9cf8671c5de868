package impl

import (
	"io"
	"log/slog"
	"time"

	"artisan/config"

	"github.com/shopspring/decimal"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Store: &config.StoreConfig{Timeout: time.Second},
		Catalog: &config.CatalogConfig{
			DefaultPageSize: 12,
			MaxPageSize:     100,
			RelatedLimit:    4,
		},
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)

	return &d
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
