package telegram

import (
	"context"
	"time"

	"market-insight/config"
	"market-insight/internal/service"
	"market-insight/pkg/logger"
	"market-insight/pkg/telegram"
	"market-insight/pkg/utils"

	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"
)

type TelegramBotHandler struct {
	ctx      context.Context
	cfg      *config.Config
	bot      *telebot.Bot
	log      *logger.Logger
	telegram *telegram.TelegramRateLimiter
	echo     *echo.Echo
	service  *service.Service
	polling  bool
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	telegram *telegram.TelegramRateLimiter,
	echo *echo.Echo,
	service *service.Service) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		bot:      bot,
		telegram: telegram,
		echo:     echo,
		service:  service,
	}
}

// Start registers the bot commands. With a webhook URL configured, updates
// arrive through the HTTP server; otherwise the bot long-polls Telegram.
func (t *TelegramBotHandler) Start() {
	t.log.Info("Starting Telegram bot...")
	t.RegisterHandlers()
	t.telegram.StartCleanupExpired(t.ctx)

	if t.cfg.Telegram.WebhookURL == "" {
		t.log.Info("Telegram webhook is disabled, using long polling")
		t.polling = true
		utils.GoSafe(t.log, t.bot.Start)
		return
	}

	t.log.Info("Setting webhook URL", logger.StringField("webhook_url", t.cfg.Telegram.WebhookURL))
	if err := t.bot.SetWebhook(&telebot.Webhook{
		Endpoint: &telebot.WebhookEndpoint{PublicURL: t.cfg.Telegram.WebhookURL},
	}); err != nil {
		t.log.Error("Failed to set telegram webhook", logger.ErrorField(err))
	}
}

func (t *TelegramBotHandler) Stop() {
	t.log.Info("Stopping Telegram bot...")

	if t.polling {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stopDone := make(chan struct{})
		go func() {
			t.bot.Stop()
			close(stopDone)
		}()

		select {
		case <-stopDone:
			t.log.Info("Telegram bot stopped successfully")
		case <-ctx.Done():
			t.log.Warn("Timeout while stopping bot, forcing shutdown")
		}
	}

	t.telegram.StopCleanupExpired()
	t.log.Info("Telegram bot shutdown completed")
}
