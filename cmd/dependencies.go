package cmd

import (
	"context"
	"time"

	"market-insight/config"
	"market-insight/internal/repository"
	"market-insight/internal/service"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"
	"market-insight/pkg/middleware"
	"market-insight/pkg/postgres"
	"market-insight/pkg/telegram"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/telebot.v3"
	"gorm.io/gorm"
)

type AppDependency struct {
	db          *postgres.DB
	cfg         *config.Config
	log         *logger.Logger
	validator   *goValidator.Validate
	echo        *echo.Echo
	cache       cache.Cache
	telegram    *telegram.TelegramRateLimiter
	telegramBot *telebot.Bot
}

// newCoreDependency wires what every command needs: config, logging, the
// cache and, when enabled, the database.
func newCoreDependency() (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	var db *postgres.DB
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(cfg.DB, log)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return nil, err
		}
	} else {
		log.Info("Database disabled, analysis history will not be persisted")
	}

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}, nil
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	appDep, err := newCoreDependency()
	if err != nil {
		return nil, err
	}
	cfg, log := appDep.cfg, appDep.log

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.NewRateLimiterMiddleware(cfg.API.RateLimitPerSecond, cfg.API.RateLimitBurst, cfg.API.RateLimitExpiresIn))
	appDep.echo = e

	if !cfg.Telegram.Enabled() {
		log.Info("Telegram bot disabled, no bot token configured")
		return appDep, nil
	}

	pref := telebot.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", zap.Error(err))
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Error("Failed to create telegram bot", zap.Error(err))
		_ = appDep.Close()
		return nil, err
	}
	appDep.telegramBot = bot
	appDep.telegram = telegram.NewTelegramRateLimiter(&cfg.Telegram, log, bot)

	if chatID := cfg.Telegram.AlertChatID; chatID != 0 {
		appDep.log = log.WithAlerts(zapcore.ErrorLevel, func(message string) {
			if _, err := bot.Send(&telebot.Chat{ID: chatID}, message); err != nil {
				log.Warn("Failed to send telegram alert", zap.Error(err))
			}
		})
	}
	return appDep, nil
}

func (d *AppDependency) gormDB() *gorm.DB {
	if d.db == nil {
		return nil
	}
	return d.db.DB
}

// Services builds the repository and service layers on top of d.
func (d *AppDependency) Services() (*service.Service, error) {
	repo, err := repository.NewRepository(d.cfg, d.gormDB(), d.log)
	if err != nil {
		return nil, err
	}
	return service.NewService(d.cfg, d.log, repo, d.cache), nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	_ = d.log.Sync()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
