package service

import (
	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
)

// PricingTable maps a category to its flat per-hour rate. The table is
// injected at construction and read-only afterwards.
type PricingTable struct {
	rates map[db.Category]float64
}

// DefaultRates returns the lot's standard per-hour rates.
func DefaultRates() map[db.Category]float64 {
	return map[db.Category]float64{
		db.CategoryCar:      3.0,
		db.CategoryBike:     1.5,
		db.CategoryDisabled: 2.5,
	}
}

func NewPricingTable(rates map[db.Category]float64) *PricingTable {
	copied := make(map[db.Category]float64, len(rates))
	for category, rate := range rates {
		copied[category] = rate
	}
	return &PricingTable{rates: copied}
}

func (t *PricingTable) Rate(category db.Category) (float64, error) {
	rate, ok := t.rates[category]
	if !ok {
		return 0, apperrors.InvalidInput("no rate configured for category %q", category)
	}
	return rate, nil
}

// Fee computes hours * rate. Hours must be strictly positive.
func (t *PricingTable) Fee(category db.Category, hours float64) (float64, error) {
	if hours <= 0 {
		return 0, apperrors.InvalidInput("hours must be greater than zero, got %v", hours)
	}
	rate, err := t.Rate(category)
	if err != nil {
		return 0, err
	}
	return hours * rate, nil
}
