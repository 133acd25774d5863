package domain

import "context"

// Service is the live cart for the session. Every mutation keeps the
// conservation law: for each product, catalog stock plus the reserved
// cart quantity equals the stock before the cart touched it.
type Service interface {
	// Add reserves one unit and creates or increments the line.
	Add(ctx context.Context, productID int64) error

	// SetQuantity moves a line to qty, reserving or releasing the
	// difference. qty <= 0 removes the line.
	SetQuantity(ctx context.Context, productID int64, qty int) error

	// Remove deletes the line and releases its full quantity.
	Remove(ctx context.Context, productID int64) error

	// Evict drops the line without releasing stock. Used when the
	// product itself is being deleted; the reservation is written off.
	Evict(ctx context.Context, productID int64)

	// Clear removes every line, releasing all reserved stock. A line
	// whose release fails is dropped anyway; its reservation is
	// written off rather than left open for a double release.
	Clear(ctx context.Context) error

	// Consume empties the cart without releasing stock and returns
	// the lines. Called by finalize once the invoice is committed.
	Consume() []Line

	Lines() []Line
	Subtotal(basis PriceBasis) float64
	TotalBonus() float64
}
