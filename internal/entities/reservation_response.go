package entities

import (
	"time"

	"smartparking/internal/db"
)

type ReservationResponse struct {
	ID            int         `json:"id"`
	UserID        int         `json:"user_id"`
	Category      db.Category `json:"category"`
	BookingDate   time.Time   `json:"booking_date"`
	EntryTime     time.Time   `json:"entry_time"`
	Hours         float64     `json:"hours"`
	Fee           float64     `json:"fee"`
	Status        string      `json:"status"`
	PaymentMode   string      `json:"payment_mode"`
	PaymentStatus string      `json:"payment_status"`
	TicketPath    string      `json:"ticket_path,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func NewReservationResponse(res *db.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            res.ID,
		UserID:        res.UserID,
		Category:      res.Category,
		BookingDate:   res.BookingDate,
		EntryTime:     res.EntryTime,
		Hours:         res.Hours,
		Fee:           res.Fee,
		Status:        res.Status,
		PaymentMode:   res.PaymentMode,
		PaymentStatus: res.PaymentStatus,
		TicketPath:    res.TicketPath,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}
