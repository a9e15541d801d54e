package middleware

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"
)

// WithContext gives every telebot handler its own context, bounded by
// timeout and cancelled with rootCtx.
func WithContext(rootCtx context.Context, timeout time.Duration, handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(rootCtx, timeout)
		defer cancel()

		return handler(ctx, c)
	}
}
