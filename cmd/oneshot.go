package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"market-insight/internal/dto"
	"market-insight/internal/service"

	"github.com/spf13/cobra"
)

var (
	sentimentTimeframe string
	sentimentVariant   string
	analyzeTerm        string
	analyzeRisk        string
)

// runOnce builds the services, runs fn and prints its result as JSON.
func runOnce(cmd *cobra.Command, fn func(ctx context.Context, services *service.Service) (interface{}, error)) error {
	appDep, err := newCoreDependency()
	if err != nil {
		return err
	}
	defer appDep.Close()

	services, err := appDep.Services()
	if err != nil {
		return err
	}

	result, err := fn(cmd.Context(), services)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Print the smart money sentiment index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, func(ctx context.Context, s *service.Service) (interface{}, error) {
			return s.SentimentService.GetSentiment(ctx, sentimentTimeframe, sentimentVariant)
		})
	},
}

var valuationCmd = &cobra.Command{
	Use:   "valuation <stock>",
	Short: "Print the valuation of a stock",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, func(ctx context.Context, s *service.Service) (interface{}, error) {
			return s.ValuationService.Valuate(ctx, strings.Join(args, " "))
		})
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <asset>",
	Short: "Ask the AI analyst for a market analysis",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, func(ctx context.Context, s *service.Service) (interface{}, error) {
			return s.MarketAnalysisService.Analyze(ctx, dto.MarketAnalysisRequest{
				Asset:     strings.Join(args, " "),
				Term:      analyzeTerm,
				RiskLevel: analyzeRisk,
			})
		})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <asset> <asset> [asset...]",
	Short: "Compare the performance of two to five assets",
	Args:  cobra.RangeArgs(2, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, func(ctx context.Context, s *service.Service) (interface{}, error) {
			return s.ComparisonService.Compare(ctx, args)
		})
	},
}

func init() {
	sentimentCmd.Flags().StringVarP(&sentimentTimeframe, "timeframe", "t", "", "one of 10d, 30d, 3m, 6m, 1y, 3y")
	sentimentCmd.Flags().StringVarP(&sentimentVariant, "variant", "v", "", "statistical, cyclical or simulated")

	analyzeCmd.Flags().StringVar(&analyzeTerm, "term", dto.TermSwingTrade, "day trade, swing trade or position trade")
	analyzeCmd.Flags().StringVar(&analyzeRisk, "risk", dto.RiskModerate, "conservative, moderate or aggressive")
}
