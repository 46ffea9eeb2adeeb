package events

import (
	"testing"

	"canteen-orders/models"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		csv     string
		want    int
		enabled bool
	}{
		{"", 0, false},
		{" ", 0, false},
		{"k1:9092", 1, true},
		{"k1:9092,k2:9092", 2, true},
		{" k1:9092 , , k2:9092 ", 2, true},
	}
	for _, tt := range tests {
		c := NewClient(tt.csv)
		if len(c.Brokers) != tt.want {
			t.Errorf("NewClient(%q): %d brokers, want %d", tt.csv, len(c.Brokers), tt.want)
		}
		if c.Enabled() != tt.enabled {
			t.Errorf("NewClient(%q).Enabled() = %v, want %v", tt.csv, c.Enabled(), tt.enabled)
		}
	}
}

func TestNewOrderCreated(t *testing.T) {
	order := &models.Order{
		ID:         42,
		UserID:     7,
		TotalPrice: 36.0,
		Status:     "Pending",
		Items:      make([]models.OrderItem, 2),
	}
	evt := NewOrderCreated(order)
	if evt.EventID == "" {
		t.Error("EventID not assigned")
	}
	if evt.Type != TypeOrderCreated {
		t.Errorf("Type = %q, want %q", evt.Type, TypeOrderCreated)
	}
	if evt.OrderID != 42 || evt.UserID != 7 || evt.TotalPrice != 36.0 || evt.ItemCount != 2 {
		t.Errorf("event = %+v, want order fields copied", evt)
	}
}
