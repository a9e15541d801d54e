package telegram

import (
	"market-insight/internal/dto"

	"gopkg.in/telebot.v3"
)

var (
	btnSentimentTimeframe telebot.Btn = telebot.Btn{Unique: "btn_sentiment_timeframe"}
)

const (
	commonErrorInternal = "Something went wrong on our side, please try again."
	messageLoading      = "⏳ Crunching the numbers, please wait..."
	messageAnalyzing    = "🤖 Asking the AI analyst about %s, this can take a minute..."
)

// timeframeMenu offers every timeframe for the given sentiment variant.
func timeframeMenu(variant string) *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	var buttons []telebot.Btn
	for _, tf := range dto.Timeframes {
		buttons = append(buttons, menu.Data(tf.Label, btnSentimentTimeframe.Unique, tf.Value, variant))
	}
	menu.Inline(menu.Split(3, buttons)...)
	return menu
}
