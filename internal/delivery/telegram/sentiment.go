package telegram

import (
	"context"

	"market-insight/pkg/telegram"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleSentiment(ctx context.Context, c telebot.Context) error {
	timeframe, variant, err := parseSentimentArgs(c.Args())
	if err != nil {
		_, err = t.telegram.Send(ctx, c, "⚠️ "+err.Error())
		return err
	}

	msg := t.showLoading(ctx, c, messageLoading)
	report, err := t.service.SentimentService.GetSentiment(ctx, timeframe, variant)
	if err != nil {
		return t.replyError(ctx, c, msg, err)
	}
	return t.respond(ctx, c, msg, telegram.FormatSentimentMessage(report), timeframeMenu(report.Variant))
}

func (t *TelegramBotHandler) handleBtnSentimentTimeframe(ctx context.Context, c telebot.Context) error {
	if err := t.telegram.Respond(ctx, c, &telebot.CallbackResponse{}); err != nil {
		return err
	}

	args := c.Args()
	var timeframe, variant string
	if len(args) > 0 {
		timeframe = args[0]
	}
	if len(args) > 1 {
		variant = args[1]
	}

	report, err := t.service.SentimentService.GetSentiment(ctx, timeframe, variant)
	if err != nil {
		return t.replyError(ctx, c, c.Message(), err)
	}
	return t.respond(ctx, c, c.Message(), telegram.FormatSentimentMessage(report), timeframeMenu(report.Variant))
}

func (t *TelegramBotHandler) handleVolatility(ctx context.Context, c telebot.Context) error {
	report, err := t.service.SentimentService.GetVolatility(ctx)
	if err != nil {
		return t.replyError(ctx, c, nil, err)
	}
	return t.respond(ctx, c, nil, telegram.FormatVolatilityMessage(report))
}
