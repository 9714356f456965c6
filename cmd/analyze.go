package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/v2g-advisor/config"
	"github.com/kilianp07/v2g-advisor/core/analysis"
	"github.com/kilianp07/v2g-advisor/core/finance"
	"github.com/kilianp07/v2g-advisor/core/risk"
	"github.com/kilianp07/v2g-advisor/core/score"
	"github.com/kilianp07/v2g-advisor/infra/logger"
)

var (
	inputPath   string
	includeRisk bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis and print the result as JSON",
	RunE:  analyzeOnce,
}

func init() {
	analyzeCmd.Flags().StringVarP(&inputPath, "input", "i", "", "analysis request file (JSON)")
	analyzeCmd.Flags().BoolVar(&includeRisk, "risk", false, "include the Monte Carlo risk simulation")
	if err := analyzeCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// One-shot runs work without a config file.
		cfg = config.Default()
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var req analysis.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if includeRisk {
		req.IncludeRisk = true
	}

	fin := finance.NewAnalyzer(finance.DefaultTariffs(), cfg.Finance)
	engine := analysis.NewEngine(
		fin,
		score.NewScorer(),
		risk.NewSimulator(fin, cfg.Risk),
		analysis.WithLogger(logger.New("analyze")),
	)
	res, err := engine.Analyze(context.Background(), req)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
