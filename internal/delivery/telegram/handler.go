package telegram

import (
	"context"
	"net/http"
	"strings"

	"market-insight/internal/dto"
	"market-insight/pkg/logger"
	"market-insight/pkg/middleware"

	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) RegisterHandlers() {
	t.echo.POST("/api/v1/telegram/webhook", func(c echo.Context) error {
		var update telebot.Update
		if err := c.Bind(&update); err != nil {
			t.log.ErrorContext(t.ctx, "Cannot bind JSON", logger.ErrorField(err))
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		t.bot.ProcessUpdate(update)
		return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "ok", nil))
	})

	timeout := t.cfg.Telegram.TimeoutDuration
	t.bot.Handle("/start", middleware.WithContext(t.ctx, timeout, t.handleStart))
	t.bot.Handle("/help", middleware.WithContext(t.ctx, timeout, t.handleHelp))
	t.bot.Handle("/sentiment", middleware.WithContext(t.ctx, timeout, t.handleSentiment))
	t.bot.Handle(&btnSentimentTimeframe, middleware.WithContext(t.ctx, timeout, t.handleBtnSentimentTimeframe))
	t.bot.Handle("/volatility", middleware.WithContext(t.ctx, timeout, t.handleVolatility))
	t.bot.Handle("/valuation", middleware.WithContext(t.ctx, timeout, t.handleValuation))
	t.bot.Handle("/analyze", middleware.WithContext(t.ctx, timeout, t.handleAnalyze))
	t.bot.Handle("/compare", middleware.WithContext(t.ctx, timeout, t.handleCompare))
	t.bot.Handle(telebot.OnText, middleware.WithContext(t.ctx, timeout, t.handleTextMessage))
}

func (t *TelegramBotHandler) handleTextMessage(ctx context.Context, c telebot.Context) error {
	if strings.HasPrefix(c.Text(), "/") {
		_, err := t.telegram.Send(ctx, c, "I don't know that command. Use /help to see what I can do.")
		return err
	}
	_, err := t.telegram.Send(ctx, c, "Send me a command, for example /sentiment or /valuation apple. Use /help for the full list.")
	return err
}
