// Package notify posts new-order summaries to an admin Telegram chat.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"canteen-orders/logging"
	"canteen-orders/models"
)

type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// OrderCreated sends a summary message. Failures are logged, not
// returned: the order is already committed.
func (n *Notifier) OrderCreated(order *models.Order) {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d (user %d)\n", order.ID, order.UserID)
	for _, item := range order.Items {
		line := fmt.Sprintf("- %dx %s", item.Quantity, item.NameAtOrder)
		if item.ProportionName != nil {
			line += fmt.Sprintf(" (%s)", *item.ProportionName)
		}
		fmt.Fprintf(&b, "%s = %.2f\n", line, item.PriceAtOrder*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "Total: %.2f", order.TotalPrice)

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		logging.Log(logging.Fields{Service: "notify", OrderID: order.ID, Status: "send_error", Message: err.Error()})
	}
}
