package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"canteen-orders/events"
	"canteen-orders/models"
	"canteen-orders/outbox"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusPreparing = "Preparing"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// ValidStatusTransition reports whether an order may move from one
// status to another. Completed and Cancelled are terminal.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPreparing || to == OrderStatusCancelled
	case OrderStatusPreparing:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	default:
		return false
	}
}

// OrderStore persists priced order aggregates.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// SaveOrderAtomic writes the order header (already carrying its final
// total), every line, and the order.created outbox row in one
// transaction. No reader ever sees the order without all of its lines
// or with a placeholder total. On failure nothing is committed.
func (s *OrderStore) SaveOrderAtomic(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		order.UserID, order.TotalPrice, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("user %d: %w", order.UserID, ErrInvalidReference)
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, proportion_name, quantity, price_at_order, name_at_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.MenuItemID, item.ProportionName, item.Quantity, item.PriceAtOrder, item.NameAtOrder,
		).Scan(&item.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, fmt.Errorf("menu item %d: %w", item.MenuItemID, ErrInvalidReference)
			}
			return nil, fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	evt := events.NewOrderCreated(order)
	if err := outbox.Insert(ctx, tx, evt.EventID, events.TopicOrders, strconv.FormatInt(order.ID, 10), evt); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}
	return order, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, total_price, status, created_at
		FROM orders WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	items, err := s.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (s *OrderStore) ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT id, user_id, total_price, status, created_at
		FROM orders ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
}

// ListOrdersByUser returns the user's order history, newest first.
func (s *OrderStore) ListOrdersByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT id, user_id, total_price, status, created_at
		FROM orders WHERE user_id = $3 ORDER BY id DESC OFFSET $1 LIMIT $2`,
		offset, limit, userID)
}

func (s *OrderStore) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderStore) orderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, menu_item_id, proportion_name, quantity, price_at_order, name_at_order
		FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.ProportionName,
			&item.Quantity, &item.PriceAtOrder, &item.NameAtOrder); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateOrderStatus moves an order to a new status after checking the
// transition against the current row, under a row lock.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin status tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return err
	}
	if !ValidStatusTransition(current, status) {
		return fmt.Errorf("order %d: %s -> %s: %w", id, current, status, ErrInvalidTransition)
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
