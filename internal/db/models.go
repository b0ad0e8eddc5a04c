package db

import "time"

// Category is a parking spot class. The set is fixed at build time.
type Category string

const (
	CategoryCar      Category = "car"
	CategoryBike     Category = "bike"
	CategoryDisabled Category = "disabled"
)

// Categories lists every known category in a stable order.
var Categories = []Category{CategoryCar, CategoryBike, CategoryDisabled}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCar, CategoryBike, CategoryDisabled:
		return true
	}
	return false
}

// Reservation statuses. Cancelled and Ended are terminal.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusEnded     = "ended"
)

// Payment modes. Payment is recorded as a label only, never executed.
const (
	PaymentCash       = "cash"
	PaymentElectronic = "electronic"
)

type User struct {
	ID           int
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	VehicleType  string
	PlateNumber  string
	Color        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasVehicle reports whether the user registered a vehicle. Reservations
// require one.
func (u *User) HasVehicle() bool {
	return u.VehicleType != "" && u.PlateNumber != ""
}

type Reservation struct {
	ID          int
	UserID      int
	Category    Category
	BookingDate time.Time
	EntryTime   time.Time
	Hours       float64
	Fee         float64
	Status      string
	PaymentMode string
	// PaymentStatus is a display label derived from the payment mode.
	PaymentStatus string
	// TicketPath is empty until the QR artifact has been produced.
	TicketPath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the reservation counts against capacity.
func (r *Reservation) Active() bool {
	return r.Status == StatusBooked
}

// Terminal reports whether the reservation reached a final status.
func (r *Reservation) Terminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusEnded
}
