package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Callers match
// them with errors.Is to decide the HTTP status.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)
