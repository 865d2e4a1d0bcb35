// Command export converts a scraped-transactions JSON dump into the
// canonical budgeting-tool CSV, plus an optional skipped-transactions
// report for the audit trail.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/google/uuid"

	"github.com/ysegal/budgetbridge/internal/config"
	"github.com/ysegal/budgetbridge/internal/csvcodec"
	"github.com/ysegal/budgetbridge/internal/logger"
	"github.com/ysegal/budgetbridge/internal/transform"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "Path to the scraped transactions JSON file")
		outputPath  = flag.String("output", "transactions.csv", "Path for the canonical CSV export")
		skippedPath = flag.String("skipped", "", "Optional path for the skipped-transactions JSON report")
		configPath  = flag.String("config", "", "Optional YAML config file")
	)
	flag.Parse()

	log := logger.New()
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	if *inputPath == "" {
		log.Fatal().Msg("Error: -input is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading config failed")
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *inputPath).Msg("Reading input failed")
	}

	var txs []transform.RawTransaction
	if err := json.Unmarshal(data, &txs); err != nil {
		log.Fatal().Err(err).Str("path", *inputPath).Msg("Decoding input failed")
	}

	enabled := txs[:0:0]
	for _, tx := range txs {
		if cfg.AccountEnabled(tx.AccountName) {
			enabled = append(enabled, tx)
		}
	}
	log.Info().Int("scraped", len(txs)).Int("enabled", len(enabled)).Msg("Loaded scraped transactions")

	rows, skipped := transform.BuildRows(enabled)
	if err := os.WriteFile(*outputPath, []byte(csvcodec.Serialize(rows)), 0644); err != nil {
		log.Fatal().Err(err).Str("path", *outputPath).Msg("Writing export failed")
	}

	if *skippedPath != "" {
		report, err := json.MarshalIndent(skipped, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Encoding skipped report failed")
		}
		if err := os.WriteFile(*skippedPath, report, 0644); err != nil {
			log.Fatal().Err(err).Str("path", *skippedPath).Msg("Writing skipped report failed")
		}
	}

	summary := transform.Summarize(rows)
	log.Info().
		Int("exported", len(rows)).
		Int("skipped", len(skipped)).
		Str("total_outflow", summary.TotalOutflow.StringFixed(2)).
		Str("total_inflow", summary.TotalInflow.StringFixed(2)).
		Str("path", *outputPath).
		Msg("Export complete")
}
