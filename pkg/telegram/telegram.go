package telegram

import (
	"context"
	"strconv"
	"sync"
	"time"

	"market-insight/config"
	"market-insight/pkg/logger"
	"market-insight/pkg/ratelimit"
	"market-insight/pkg/utils"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Bot is the part of *telebot.Bot the rate limiter drives.
type Bot interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramRateLimiter wraps outgoing bot calls with a global limiter and a
// per-user limiter so a single chat cannot exhaust the bot API quota.
type TelegramRateLimiter struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           Bot
	globalLimiter *rate.Limiter
	userLimiters  *ratelimit.LimiterStore
	editMu        sync.Mutex
	wg            sync.WaitGroup
}

func NewTelegramRateLimiter(cfg *config.TelegramConfig, log *logger.Logger, bot Bot) *TelegramRateLimiter {
	return &TelegramRateLimiter{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
		userLimiters:  ratelimit.NewLimiterStore(rate.Limit(cfg.MaxUserRequestPerSecond), cfg.MaxUserRequestPerSecond),
	}
}

func (t *TelegramRateLimiter) Send(ctx context.Context, c telebot.Context, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if err := t.checkRateLimit(ctx, c.Sender().ID); err != nil {
		return nil, err
	}
	return t.bot.Send(c.Chat(), what, opts...)
}

func (t *TelegramRateLimiter) Edit(ctx context.Context, c telebot.Context, msg *telebot.Message, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if err := t.checkRateLimit(ctx, c.Sender().ID); err != nil {
		return nil, err
	}

	t.editMu.Lock()
	defer t.editMu.Unlock()
	return t.bot.Edit(msg, what, opts...)
}

func (t *TelegramRateLimiter) Respond(ctx context.Context, c telebot.Context, resp ...*telebot.CallbackResponse) error {
	if err := t.checkRateLimit(ctx, c.Sender().ID); err != nil {
		return err
	}
	return c.Respond(resp...)
}

func (t *TelegramRateLimiter) checkRateLimit(ctx context.Context, senderID int64) error {
	if err := t.globalLimiter.Wait(ctx); err != nil {
		t.log.ErrorContext(ctx, "Failed to wait for global rate limit", logger.ErrorField(err))
		return err
	}
	if err := t.userLimiters.GetLimiter(strconv.FormatInt(senderID, 10)).Wait(ctx); err != nil {
		t.log.ErrorContext(ctx, "Failed to wait for user rate limit", logger.ErrorField(err))
		return err
	}
	return nil
}

// StartCleanupExpired periodically drops per-user limiters idle for longer
// than cfg.RateLimitExpiresIn until ctx is cancelled.
func (t *TelegramRateLimiter) StartCleanupExpired(ctx context.Context) {
	if t.cfg.RateLimitExpiresIn <= 0 {
		return
	}

	t.wg.Add(1)
	utils.GoSafe(t.log, func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.cfg.RateLimitExpiresIn)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				t.log.Info("Received signal to stop Telegram rate limiter cleanup expired")
				return
			case <-ticker.C:
				if removed := t.userLimiters.Cleanup(t.cfg.RateLimitExpiresIn); removed > 0 {
					t.log.Debug("Expired telegram user limiters removed", logger.IntField("removed", removed))
				}
			}
		}
	})
}

func (t *TelegramRateLimiter) StopCleanupExpired() {
	t.wg.Wait()
	t.log.Info("Telegram rate limiter stopped")
}
