package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := `👋 *Welcome to Market Insight!* 🤖
I track smart money sentiment, value stocks and ask an AI analyst for trade ideas.

🔧 Commands:

📊 /sentiment - Smart money sentiment index
🌡️ /volatility - Current volatility index reading
💰 /valuation - Valuation of a stock, e.g. /valuation apple
🤖 /analyze - AI market analysis, e.g. /analyze gold swing moderate
⚖️ /compare - Compare assets, e.g. /compare apple, nvidia, gold

🆘 /help - Full usage guide

🚀 *Ready?* Try /sentiment to get started!`
	_, err := t.telegram.Send(ctx, c, message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	return err
}

func (t *TelegramBotHandler) handleHelp(ctx context.Context, c telebot.Context) error {
	message := `❓ *Market Insight Guide* ❓

📊 */sentiment [timeframe] [variant]*
Timeframes: 10d, 30d, 3m, 6m, 1y, 3y (default 30d)
Variants: statistical, cyclical, simulated

🌡️ */volatility*
Latest VIX level and what it means.

💰 */valuation <stock>*
P/E, PEG and P/S classification. Company names work, e.g. apple, microsoft.

🤖 */analyze <asset> <term> <risk>*
Terms: day, swing, position
Risk: conservative, moderate, aggressive
Example: /analyze bitcoin day trade aggressive

⚖️ */compare <asset>, <asset>, ...*
Two to five assets, comma separated.

📌 Everything here is informational only. *Do Your Own Research!* 🔍`
	_, err := t.telegram.Send(ctx, c, message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	return err
}
