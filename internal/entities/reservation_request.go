package entities

import "smartparking/internal/db"

type ReserveRequest struct {
	Category    db.Category `json:"category"`
	Hours       float64     `json:"hours"`
	PaymentMode string      `json:"payment_mode"`
}

// EditReservationRequest is a partial update. Nil means "leave unchanged";
// the pointer distinguishes an absent field from a zero value.
type EditReservationRequest struct {
	Category *db.Category `json:"category,omitempty"`
	Hours    *float64     `json:"hours,omitempty"`
}

func (r EditReservationRequest) Empty() bool {
	return r.Category == nil && r.Hours == nil
}

type StatusRequest struct {
	Status string `json:"status"`
}
