// Package telegram delivers per-run failure notifications to a Telegram chat.
package telegram

import (
	"fmt"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/plaidsheets/plaidsheets"
)

type Notifier struct {
	Config *plaidsheets.Config
}

func NewNotifier(cfg *plaidsheets.Config) Notifier {
	return Notifier{Config: cfg}
}

// Notify implements plaidsheets.Notifier.
func (n Notifier) Notify(owner, account, operation string, runErr error) error {
	bot, err := tb.NewBot(tb.Settings{
		Token:  n.Config.Telegram.Token,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	message := fmt.Sprintf("plaidsheets - %s - %s - %s\nError: %s", owner, account, operation, runErr)
	_, err = bot.Send(tb.ChatID(n.Config.Telegram.ChatID), message)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
