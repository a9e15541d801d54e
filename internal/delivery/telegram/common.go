package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"market-insight/internal/dto"
	"market-insight/internal/repository"
	"market-insight/internal/sentiment"
	"market-insight/internal/service"
	"market-insight/pkg/logger"

	"gopkg.in/telebot.v3"
)

// parseSentimentArgs accepts a timeframe and a variant in any order.
func parseSentimentArgs(args []string) (timeframe, variant string, err error) {
	for _, arg := range args {
		arg = strings.ToLower(strings.TrimSpace(arg))
		if arg == "" {
			continue
		}
		if _, ok := dto.ParseTimeframe(arg); ok {
			timeframe = arg
			continue
		}
		if sentiment.Variant(arg).Valid() {
			variant = arg
			continue
		}
		return "", "", fmt.Errorf("unknown option %q, see /help", arg)
	}
	return timeframe, variant, nil
}

// parseAnalyzeArgs reads "<asset...> <term> [trade] <risk>". The asset may
// span several words, e.g. "sp500 etf swing moderate".
func parseAnalyzeArgs(payload string) (dto.MarketAnalysisRequest, error) {
	fields := strings.Fields(strings.ToLower(payload))
	usage := errors.New("usage: /analyze <asset> <day|swing|position> <conservative|moderate|aggressive>")
	if len(fields) < 3 {
		return dto.MarketAnalysisRequest{}, usage
	}

	n := len(fields)
	risk := fields[n-1]
	rest := fields[:n-1]
	if rest[len(rest)-1] == "trade" {
		rest = rest[:len(rest)-1]
	}
	if len(rest) < 2 {
		return dto.MarketAnalysisRequest{}, usage
	}

	term := rest[len(rest)-1] + " trade"
	return dto.MarketAnalysisRequest{
		Asset:     strings.Join(rest[:len(rest)-1], " "),
		Term:      term,
		RiskLevel: risk,
	}, nil
}

// parseCompareArgs splits on commas when present, on whitespace otherwise.
func parseCompareArgs(payload string) []string {
	var parts []string
	if strings.Contains(payload, ",") {
		parts = strings.Split(payload, ",")
	} else {
		parts = strings.Fields(payload)
	}

	assets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			assets = append(assets, p)
		}
	}
	return assets
}

// errorMessage turns a service error into something safe to show a user.
func errorMessage(err error) string {
	switch {
	case service.IsValidationError(err):
		return "⚠️ " + err.Error()
	case errors.Is(err, service.ErrAINotConfigured):
		return "🤖 AI analysis is not configured on this bot."
	case errors.Is(err, repository.ErrNoData):
		return "🔍 No market data found. Check the name or ticker and try again."
	default:
		return "❌ " + commonErrorInternal
	}
}

func (t *TelegramBotHandler) replyError(ctx context.Context, c telebot.Context, msg *telebot.Message, err error) error {
	if !service.IsValidationError(err) {
		t.log.ErrorContext(ctx, "Telegram command failed",
			logger.StringField("command", c.Text()),
			logger.ErrorField(err),
		)
	}

	if msg != nil {
		_, sendErr := t.telegram.Edit(ctx, c, msg, errorMessage(err))
		return sendErr
	}
	_, sendErr := t.telegram.Send(ctx, c, errorMessage(err))
	return sendErr
}

// showLoading sends a placeholder message that the caller later edits with
// the result.
func (t *TelegramBotHandler) showLoading(ctx context.Context, c telebot.Context, text string) *telebot.Message {
	msg, err := t.telegram.Send(ctx, c, text)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to send loading message", logger.ErrorField(err))
		return nil
	}
	return msg
}

// respond edits the loading message when there is one, or sends a new one.
func (t *TelegramBotHandler) respond(ctx context.Context, c telebot.Context, msg *telebot.Message, text string, opts ...interface{}) error {
	opts = append(opts, telebot.ModeHTML, telebot.NoPreview)
	if msg != nil {
		_, err := t.telegram.Edit(ctx, c, msg, text, opts...)
		return err
	}
	_, err := t.telegram.Send(ctx, c, text, opts...)
	return err
}
