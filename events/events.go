package events

import (
	"time"

	"github.com/google/uuid"

	"canteen-orders/models"
)

const (
	TopicOrders = "canteen.orders"

	TypeOrderCreated = "order.created"
)

// Event is the wire contract published to the orders topic.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ItemCount  int       `json:"item_count"`
}

func NewOrderCreated(order *models.Order) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       TypeOrderCreated,
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  time.Now().UTC(),
		ItemCount:  len(order.Items),
	}
}
