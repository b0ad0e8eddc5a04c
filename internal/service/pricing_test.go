package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/service"
)

func TestPricingTable_Fee(t *testing.T) {
	pricing := service.NewPricingTable(service.DefaultRates())

	tests := []struct {
		name     string
		category db.Category
		hours    float64
		want     float64
		wantCode string
	}{
		{"car at 3.0/h", db.CategoryCar, 2.5, 7.5, ""},
		{"bike at 1.5/h", db.CategoryBike, 2, 3.0, ""},
		{"disabled at 2.5/h", db.CategoryDisabled, 1, 2.5, ""},
		{"fractional hours", db.CategoryBike, 0.5, 0.75, ""},
		{"zero hours", db.CategoryCar, 0, 0, apperrors.CodeInvalidInput},
		{"negative hours", db.CategoryCar, -1, 0, apperrors.CodeInvalidInput},
		{"unknown category", "truck", 1, 0, apperrors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := pricing.Fee(tt.category, tt.hours)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}
}

func TestPricingTable_Rate(t *testing.T) {
	pricing := service.NewPricingTable(map[db.Category]float64{db.CategoryCar: 4.25})

	rate, err := pricing.Rate(db.CategoryCar)
	require.NoError(t, err)
	assert.Equal(t, 4.25, rate)

	_, err = pricing.Rate(db.CategoryBike)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}
