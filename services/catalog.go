package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canteen-orders/models"
)

// CatalogStore persists menu items. The pool is injected; no package
// state.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	for name, mult := range item.Proportions {
		if mult <= 0 {
			return fmt.Errorf("proportion %q: multiplier must be > 0", name)
		}
	}
	return nil
}

func (s *CatalogStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	availability, err := json.Marshal(item.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	proportions, err := json.Marshal(item.Proportions)
	if err != nil {
		return fmt.Errorf("marshal proportions: %w", err)
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, image, availability, proportions, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		item.Name, item.Description, item.Price, item.Image, availability, proportions, item.Available,
	).Scan(&item.ID, &item.CreatedAt)
}

func (s *CatalogStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var (
		item             models.MenuItem
		availabilityJSON []byte
		proportionsJSON  []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, price, image, availability, proportions, available, created_at, deleted_from
		FROM menu_items WHERE id = $1`,
		id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
		&availabilityJSON, &proportionsJSON, &item.Available, &item.CreatedAt, &item.DeletedFrom)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := unmarshalMenuJSON(&item, availabilityJSON, proportionsJSON); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogStore) ListMenuItems(ctx context.Context, offset, limit int) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, price, image, availability, proportions, available, created_at, deleted_from
		FROM menu_items ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var (
			item             models.MenuItem
			availabilityJSON []byte
			proportionsJSON  []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
			&availabilityJSON, &proportionsJSON, &item.Available, &item.CreatedAt, &item.DeletedFrom); err != nil {
			return nil, err
		}
		if err := unmarshalMenuJSON(&item, availabilityJSON, proportionsJSON); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *CatalogStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	availability, err := json.Marshal(item.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	proportions, err := json.Marshal(item.Proportions)
	if err != nil {
		return fmt.Errorf("marshal proportions: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items SET
			name = $1, description = $2, price = $3, image = $4,
			availability = $5, proportions = $6, available = $7
		WHERE id = $8`,
		item.Name, item.Description, item.Price, item.Image, availability, proportions, item.Available, item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

// DeleteMenuItem only records the deletion timestamp; existing orders
// keep their snapshots and the row stays readable.
func (s *CatalogStore) DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items SET deleted_from = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

func unmarshalMenuJSON(item *models.MenuItem, availabilityJSON, proportionsJSON []byte) error {
	if len(availabilityJSON) > 0 {
		if err := json.Unmarshal(availabilityJSON, &item.Availability); err != nil {
			return fmt.Errorf("unmarshal availability for menu item %d: %w", item.ID, err)
		}
	}
	if len(proportionsJSON) > 0 {
		if err := json.Unmarshal(proportionsJSON, &item.Proportions); err != nil {
			return fmt.Errorf("unmarshal proportions for menu item %d: %w", item.ID, err)
		}
	}
	return nil
}
