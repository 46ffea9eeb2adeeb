package models

import "time"

// MenuItem is a row from menu_items. Proportions maps a proportion
// name (e.g. "large") to a positive multiplier applied to Price.
type MenuItem struct {
	ID           int64
	Name         string
	Description  string
	Price        float64
	Image        string
	Availability []string
	Proportions  map[string]float64
	Available    bool
	CreatedAt    time.Time
	DeletedFrom  *time.Time
}
