package services

import (
	"context"
	"errors"

	"canteen-orders/models"
)

// CatalogReader is the part of the catalog the pricing engine needs.
type CatalogReader interface {
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
}

// PriceOrder resolves every requested line against the catalog and
// builds the priced order aggregate in memory, performing no writes.
// Lines keep their request order, and the total is accumulated per
// line in that order.
//
// A line whose menu item id does not resolve fails the whole call
// with a LineError wrapping ErrInvalidReference: dropping a requested
// line would silently shrink the total. A proportion name absent from
// the item's map is not an error; the line is charged the base price.
func PriceOrder(ctx context.Context, catalog CatalogReader, userID int64, lines []models.OrderLine) (*models.Order, error) {
	order := &models.Order{
		UserID: userID,
		Status: OrderStatusPending,
		Items:  make([]models.OrderItem, 0, len(lines)),
	}

	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, &LineError{Index: i, MenuItemID: line.MenuItemID, Reason: ErrInvalidQuantity}
		}

		item, err := catalog.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, &LineError{Index: i, MenuItemID: line.MenuItemID, Reason: ErrInvalidReference}
			}
			return nil, err
		}

		price := item.Price
		if line.ProportionName != nil {
			if mult, ok := item.Proportions[*line.ProportionName]; ok {
				price *= mult
			}
		}

		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:     line.MenuItemID,
			ProportionName: line.ProportionName,
			Quantity:       line.Quantity,
			PriceAtOrder:   price,
			NameAtOrder:    item.Name,
		})
		order.TotalPrice += price * float64(line.Quantity)
	}

	return order, nil
}
