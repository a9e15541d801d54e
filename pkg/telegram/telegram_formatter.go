package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"

	"market-insight/internal/dto"
	"market-insight/internal/sentiment"
	"market-insight/internal/valuation"
	"market-insight/pkg/utils"
)

func signalEmoji(signal sentiment.Signal) string {
	switch signal {
	case sentiment.SignalBullish:
		return "🟢"
	case sentiment.SignalBearish:
		return "🔴"
	default:
		return "🟡"
	}
}

func valuationEmoji(overall string) string {
	switch overall {
	case valuation.OverallUndervalued:
		return "🟢"
	case valuation.OverallOvervalued:
		return "🔴"
	default:
		return "🟡"
	}
}

// FormatSentimentMessage renders a sentiment report as Telegram HTML.
func FormatSentimentMessage(report *dto.SentimentReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>Smart Money Sentiment</b> (%s)\n\n", signalEmoji(report.Signal), report.Timeframe))
	b.WriteString(fmt.Sprintf("📊 Signal: <b>%s</b>\n", strings.ToUpper(string(report.Signal))))
	b.WriteString(fmt.Sprintf("🏦 Institutional Flow: %.2f\n", report.InstitutionalFlow))
	b.WriteString(fmt.Sprintf("👥 Retail Sentiment: %.2f\n", report.RetailSentiment))
	b.WriteString(fmt.Sprintf("🌑 Dark Pool Activity: %.2f\n", report.DarkPoolActivity))
	b.WriteString(fmt.Sprintf("🎯 Options Flow: %.2f\n", report.OptionsFlow))
	b.WriteString(fmt.Sprintf("⚖️ Smart Money Ratio: %.2f\n\n", report.SmartMoneyRatio))
	b.WriteString(fmt.Sprintf("<i>Source: %s, %d periods</i>\n", report.DataSource, len(report.HistoricalData)))
	if report.DataSource == sentiment.SourceSimulated {
		b.WriteString("<i>⚠️ Market data was unavailable, values are simulated.</i>\n")
	}
	b.WriteString(fmt.Sprintf("🕒 %s", utils.PrettyDate(report.GeneratedAt)))
	return b.String()
}

// FormatVolatilityMessage renders the latest volatility index reading.
func FormatVolatilityMessage(report *dto.VolatilityReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌡️ <b>Volatility Index</b> (%s)\n\n", html.EscapeString(report.Symbol)))
	b.WriteString(fmt.Sprintf("Level: <b>%.2f</b> (%s)\n", report.Level, utils.FormatPercentage(report.ChangePercent)))
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f\n", report.DayLow, report.DayHigh))
	b.WriteString(fmt.Sprintf("Reading: <b>%s</b>\n", report.Interpretation))
	b.WriteString(html.EscapeString(report.Description))
	return b.String()
}

func formatRatio(name string, ra valuation.RatioAnalysis) string {
	if ra.Value == nil || !ra.HasSignal() {
		return fmt.Sprintf("• %s: N/A\n", name)
	}
	return fmt.Sprintf("• %s: %.2f (%s, %s)\n", name, *ra.Value, ra.Interpretation, strings.ReplaceAll(string(*ra.Signal), "_", " "))
}

// FormatValuationMessage renders a stock valuation as Telegram HTML.
func FormatValuationMessage(result *dto.StockValuation) string {
	var b strings.Builder
	stock := result.Stock
	verdict := result.Valuation

	b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s)\n", valuationEmoji(verdict.OverallValuation), html.EscapeString(stock.CompanyName), html.EscapeString(stock.Symbol)))
	b.WriteString(fmt.Sprintf("💰 Price: %.2f %s\n", stock.CurrentPrice, stock.Currency))
	if stock.PreviousClose > 0 {
		change := (stock.CurrentPrice - stock.PreviousClose) / stock.PreviousClose * 100
		b.WriteString(fmt.Sprintf("📈 Day Change: %s\n", utils.FormatPercentage(change)))
	}
	b.WriteString("\n<b>Ratios</b>\n")
	b.WriteString(formatRatio("P/E", verdict.PEAnalysis))
	b.WriteString(formatRatio("PEG", verdict.PEGAnalysis))
	b.WriteString(formatRatio("P/S", verdict.PSAnalysis))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("🧭 Overall: <b>%s</b>\n", strings.ToUpper(verdict.OverallValuation)))
	b.WriteString(fmt.Sprintf("⚠️ Risk: <b>%s</b>\n", strings.ToUpper(verdict.RiskLevel)))
	b.WriteString(fmt.Sprintf("<i>Data: %s</i>\n\n", stock.DataSource))
	b.WriteString(fmt.Sprintf("<i>%s</i>", html.EscapeString(result.Disclaimer)))
	return b.String()
}

func formatLevel(label string, level dto.PriceLevel) string {
	if level.Price == "" {
		return ""
	}
	line := fmt.Sprintf("• %s: <b>%s</b>", label, html.EscapeString(string(level.Price)))
	if level.Rationale != "" {
		line += " - " + html.EscapeString(level.Rationale)
	}
	return line + "\n"
}

// FormatMarketAnalysisMessage renders an AI market analysis as Telegram HTML.
func FormatMarketAnalysisMessage(a *dto.MarketAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤖 <b>%s</b> (%s)\n", html.EscapeString(strings.ToUpper(a.Asset)), html.EscapeString(a.Symbol)))
	b.WriteString(fmt.Sprintf("⏱ %s | 🎚 %s risk\n", html.EscapeString(a.Term), html.EscapeString(a.RiskLevel)))
	b.WriteString(fmt.Sprintf("💰 Price: %.4f %s\n\n", a.CurrentMarketPrice, a.Quote.Currency))

	b.WriteString("<b>Summary</b>\n")
	b.WriteString(html.EscapeString(utils.CapitalizeSentence(a.MarketSummary)))
	b.WriteString("\n\n")

	if len(a.KeyDrivers) > 0 {
		b.WriteString("<b>Key Drivers</b>\n")
		for _, driver := range a.KeyDrivers {
			b.WriteString("• " + html.EscapeString(driver) + "\n")
		}
		b.WriteString("\n")
	}
	if a.TechnicalAnalysis != "" {
		b.WriteString("<b>Technicals</b>\n")
		b.WriteString(html.EscapeString(a.TechnicalAnalysis))
		b.WriteString("\n\n")
	}
	if a.RiskAssessment != "" {
		b.WriteString("<b>Risk</b>\n")
		b.WriteString(html.EscapeString(a.RiskAssessment))
		b.WriteString("\n\n")
	}

	s := a.TradingStrategy
	b.WriteString(fmt.Sprintf("<b>Strategy: %s</b>\n", html.EscapeString(strings.ToUpper(s.Direction))))
	if s.Rationale != "" {
		b.WriteString(html.EscapeString(s.Rationale) + "\n")
	}
	b.WriteString(formatLevel("Entry", s.Entry))
	b.WriteString(formatLevel("Stop Loss", s.StopLoss))
	b.WriteString(formatLevel("Take Profit 1", s.TakeProfit1))
	b.WriteString(formatLevel("Take Profit 2", s.TakeProfit2))

	b.WriteString(fmt.Sprintf("\n<i>Model: %s, %s</i>", html.EscapeString(a.Model), utils.PrettyDate(a.GeneratedAt)))
	return b.String()
}

// FormatComparisonMessage renders an asset comparison as Telegram HTML.
func FormatComparisonMessage(cmp *dto.AssetComparison) string {
	var b strings.Builder

	b.WriteString("⚖️ <b>Asset Comparison</b>\n\n")
	for _, a := range cmp.Assets {
		b.WriteString(fmt.Sprintf("<b>%s</b> (%s)\n", html.EscapeString(a.Name), html.EscapeString(a.Symbol)))
		b.WriteString(fmt.Sprintf("  Price %.2f %s | Day %s | Period %s | Vol %.2f%%\n",
			a.Price, a.Currency, utils.FormatPercentage(a.DayChangePercent), utils.FormatPercentage(a.PeriodChange), a.Volatility))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("🏆 Best: %s\n", html.EscapeString(cmp.BestPerformer)))
	b.WriteString(fmt.Sprintf("📉 Worst: %s\n", html.EscapeString(cmp.WorstPerformer)))
	b.WriteString(fmt.Sprintf("🌪 Most Volatile: %s", html.EscapeString(cmp.MostVolatile)))
	return b.String()
}

func FormatErrorMessage(t time.Time, errMsg string) string {
	return fmt.Sprintf("❌ %s\n<i>%s</i>", html.EscapeString(errMsg), utils.PrettyDate(t))
}
