package entities

import "smartparking/internal/db"

// StatisticsResponse is the operator view: lifetime revenue plus current
// occupancy per category. Revenue sums the fee of every reservation ever
// created, regardless of status.
type StatisticsResponse struct {
	TotalRevenue  float64             `json:"total_revenue"`
	OccupiedSpots map[db.Category]int `json:"occupied_spots"`
}
