package telegram

import (
	"context"
	"strings"

	"market-insight/pkg/telegram"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleValuation(ctx context.Context, c telebot.Context) error {
	stock := strings.TrimSpace(c.Message().Payload)
	if stock == "" {
		_, err := t.telegram.Send(ctx, c, "Which stock? For example: /valuation apple")
		return err
	}

	msg := t.showLoading(ctx, c, messageLoading)
	result, err := t.service.ValuationService.Valuate(ctx, stock)
	if err != nil {
		return t.replyError(ctx, c, msg, err)
	}
	return t.respond(ctx, c, msg, telegram.FormatValuationMessage(result))
}
