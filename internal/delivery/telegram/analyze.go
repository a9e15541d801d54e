package telegram

import (
	"context"
	"fmt"
	"time"

	"market-insight/pkg/logger"
	"market-insight/pkg/telegram"
	"market-insight/pkg/utils"

	"gopkg.in/telebot.v3"
)

// analysisTimeout bounds a whole AI analysis, which outlives the usual
// per-command timeout.
const analysisTimeout = 2 * time.Minute

func (t *TelegramBotHandler) handleAnalyze(ctx context.Context, c telebot.Context) error {
	req, err := parseAnalyzeArgs(c.Message().Payload)
	if err != nil {
		_, err = t.telegram.Send(ctx, c, "⚠️ "+err.Error())
		return err
	}

	msg := t.showLoading(ctx, c, fmt.Sprintf(messageAnalyzing, req.Asset))

	utils.GoSafe(t.log, func() {
		newCtx, cancel := context.WithTimeout(t.ctx, analysisTimeout)
		defer cancel()

		result, err := t.service.MarketAnalysisService.Analyze(newCtx, req)
		if err != nil {
			if sendErr := t.replyError(newCtx, c, msg, err); sendErr != nil {
				t.log.ErrorContext(newCtx, "Failed to send error message", logger.ErrorField(sendErr))
			}
			return
		}

		if !utils.ShouldContinue(newCtx, t.log) {
			return
		}
		if err := t.respond(newCtx, c, msg, telegram.FormatMarketAnalysisMessage(result)); err != nil {
			t.log.ErrorContext(newCtx, "Failed to show analysis", logger.ErrorField(err))
		}
	})

	return nil
}

func (t *TelegramBotHandler) handleCompare(ctx context.Context, c telebot.Context) error {
	assets := parseCompareArgs(c.Message().Payload)
	if len(assets) < 2 {
		_, err := t.telegram.Send(ctx, c, "Give me two to five assets, for example: /compare apple, nvidia, gold")
		return err
	}

	msg := t.showLoading(ctx, c, messageLoading)
	result, err := t.service.ComparisonService.Compare(ctx, assets)
	if err != nil {
		return t.replyError(ctx, c, msg, err)
	}
	return t.respond(ctx, c, msg, telegram.FormatComparisonMessage(result))
}
