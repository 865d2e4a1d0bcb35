// Command reconcile compares two transaction files — CSV or xlsx, chosen
// by extension — and prints the match report. It exits non-zero when the
// two sides do not fully agree.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ysegal/budgetbridge/internal/config"
	"github.com/ysegal/budgetbridge/internal/csvcodec"
	"github.com/ysegal/budgetbridge/internal/logger"
	"github.com/ysegal/budgetbridge/internal/normalize"
	"github.com/ysegal/budgetbridge/internal/reconcile"
	"github.com/ysegal/budgetbridge/internal/xlsxsource"
)

func main() {
	var (
		sourcePath = flag.String("source", "", "Path to the source transactions file (.csv or .xlsx)")
		targetPath = flag.String("target", "", "Path to the target transactions file (.csv or .xlsx)")
		configPath = flag.String("config", "", "Optional YAML config file")
	)
	flag.Parse()

	log := logger.New()

	if *sourcePath == "" || *targetPath == "" {
		log.Fatal().Msg("Error: -source and -target are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading config failed")
	}

	source, err := loadTransactions(*sourcePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *sourcePath).Msg("Loading source failed")
	}
	target, err := loadTransactions(*targetPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *targetPath).Msg("Loading target failed")
	}

	opts := reconcile.DefaultOptions()
	if cfg.Reconcile.AmountTolerance > 0 {
		opts.AmountTolerance = decimal.NewFromFloat(cfg.Reconcile.AmountTolerance)
	}
	if cfg.Reconcile.DateToleranceDays > 0 {
		opts.DateToleranceDays = cfg.Reconcile.DateToleranceDays
	}

	result := reconcile.Match(source, target, opts)
	fmt.Print(result.Render())

	if !result.Clean() {
		os.Exit(1)
	}
}

// loadTransactions reads a transactions file, picking the decoder by file
// extension.
func loadTransactions(path string) ([]normalize.Transaction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsxsource.Load(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loadTransactions: %w", err)
		}
		return csvcodec.Parse(string(data)), nil
	}
}
