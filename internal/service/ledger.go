package service

import (
	"context"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
)

// CapacityLedger answers the admission question: is there room for one more
// active reservation of a category? Occupancy is always derived from stored
// rows, never from an in-memory counter, so restarts and concurrent writers
// cannot make the count drift.
type CapacityLedger struct {
	store  repository.ReservationStore
	limits map[db.Category]int
}

// DefaultCapacities returns the lot's physical spot counts.
func DefaultCapacities() map[db.Category]int {
	return map[db.Category]int{
		db.CategoryCar:      40,
		db.CategoryBike:     20,
		db.CategoryDisabled: 40,
	}
}

func NewCapacityLedger(store repository.ReservationStore, limits map[db.Category]int) *CapacityLedger {
	copied := make(map[db.Category]int, len(limits))
	for category, limit := range limits {
		copied[category] = limit
	}
	return &CapacityLedger{store: store, limits: copied}
}

func (l *CapacityLedger) Limit(category db.Category) (int, error) {
	limit, ok := l.limits[category]
	if !ok {
		return 0, apperrors.InvalidInput("no capacity configured for category %q", category)
	}
	return limit, nil
}

func (l *CapacityLedger) ActiveCount(ctx context.Context, category db.Category) (int, error) {
	return l.store.CountActiveByCategory(ctx, category)
}

// CanAdmit reports whether a new reservation for category fits under the
// cap. Callers that act on the answer must hold the category's admission
// lock so check and create are atomic.
func (l *CapacityLedger) CanAdmit(ctx context.Context, category db.Category) (bool, error) {
	limit, err := l.Limit(category)
	if err != nil {
		return false, err
	}
	count, err := l.ActiveCount(ctx, category)
	if err != nil {
		return false, err
	}
	return count < limit, nil
}
