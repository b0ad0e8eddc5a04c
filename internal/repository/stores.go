package repository

import (
	"context"

	"smartparking/internal/db"
)

// ReservationStore is the persistence contract the lifecycle service works
// against. The postgres implementation below is the production store; tests
// substitute in-memory fakes.
type ReservationStore interface {
	Create(ctx context.Context, res *db.Reservation) error
	GetByID(ctx context.Context, id int) (*db.Reservation, error)
	Update(ctx context.Context, res *db.Reservation) error
	ListByUser(ctx context.Context, userID int) ([]db.Reservation, error)
	// CountActiveByCategory counts stored reservations with status booked.
	// The stored rows are the source of truth for occupancy; no counter is
	// cached anywhere.
	CountActiveByCategory(ctx context.Context, category db.Category) (int, error)
	ActiveCountsByCategory(ctx context.Context) (map[db.Category]int, error)
	SumFees(ctx context.Context) (float64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *db.User) error
	GetByID(ctx context.Context, id int) (*db.User, error)
	GetByPhone(ctx context.Context, phone string) (*db.User, error)
	Update(ctx context.Context, user *db.User) error
}
