package models

import "time"

// OrderLine is one requested entry of an order-creation call, before
// pricing. ProportionName is nil when the customer picked no size.
type OrderLine struct {
	MenuItemID     int64
	ProportionName *string
	Quantity       int
}

// OrderItem is a priced line of a stored order. PriceAtOrder and
// NameAtOrder are snapshots taken at creation; later menu edits do
// not touch them.
type OrderItem struct {
	ID             int64
	OrderID        int64
	MenuItemID     int64
	ProportionName *string
	Quantity       int
	PriceAtOrder   float64
	NameAtOrder    string
}

// Order is an order header with its lines. TotalPrice is always the
// sum of PriceAtOrder*Quantity over Items.
type Order struct {
	ID         int64
	UserID     int64
	TotalPrice float64
	Status     string
	CreatedAt  time.Time
	Items      []OrderItem
}
