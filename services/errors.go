package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by read paths when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference means a referenced record (menu item, user)
	// does not exist. Order creation fails whole on it.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrInvalidQuantity means a requested quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidTransition means an order status change is not allowed
	// from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// LineError identifies which requested line made an order
// unpriceable. Index is the zero-based position in the request.
type LineError struct {
	Index      int
	MenuItemID int64
	Reason     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (menu item %d): %v", e.Index, e.MenuItemID, e.Reason)
}

func (e *LineError) Unwrap() error { return e.Reason }
