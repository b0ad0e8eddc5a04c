package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, user_id, category, booking_date, entry_time, hours, fee, status, payment_mode, payment_status, ticket_path, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }, res *db.Reservation) error {
	return row.Scan(
		&res.ID, &res.UserID, &res.Category, &res.BookingDate, &res.EntryTime,
		&res.Hours, &res.Fee, &res.Status, &res.PaymentMode, &res.PaymentStatus,
		&res.TicketPath, &res.CreatedAt, &res.UpdatedAt,
	)
}

func (r *ReservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(user_id, category, booking_date, entry_time, hours, fee, status, payment_mode, payment_status, ticket_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		res.UserID,
		res.Category,
		res.BookingDate,
		res.EntryTime,
		res.Hours,
		res.Fee,
		res.Status,
		res.PaymentMode,
		res.PaymentStatus,
		res.TicketPath,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return apperrors.StoreUnavailable(fmt.Errorf("inserting reservation: %w", err))
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	var res db.Reservation
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	err := scanReservation(r.DB.QueryRowContext(ctx, query, id), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("reservation %d not found", id)
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("querying reservation %d: %w", id, err))
	}
	return &res, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *db.Reservation) error {
	query := `
		UPDATE reservations
		SET category = $1, entry_time = $2, hours = $3, fee = $4, status = $5,
		    payment_status = $6, ticket_path = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		res.Category, res.EntryTime, res.Hours, res.Fee, res.Status,
		res.PaymentStatus, res.TicketPath, res.ID,
	).Scan(&res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("reservation %d not found", res.ID)
		}
		return apperrors.StoreUnavailable(fmt.Errorf("updating reservation %d: %w", res.ID, err))
	}
	return nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("listing reservations for user %d: %w", userID, err))
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, apperrors.StoreUnavailable(fmt.Errorf("scanning reservation row: %w", err))
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("iterating reservation rows: %w", err))
	}
	return reservations, nil
}

// CountActiveByCategory uses the (category, status) index to derive current
// occupancy directly from stored rows.
func (r *ReservationRepository) CountActiveByCategory(ctx context.Context, category db.Category) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reservations WHERE category = $1 AND status = $2`
	err := r.DB.QueryRowContext(ctx, query, category, db.StatusBooked).Scan(&count)
	if err != nil {
		return 0, apperrors.StoreUnavailable(fmt.Errorf("counting active %s reservations: %w", category, err))
	}
	return count, nil
}

func (r *ReservationRepository) ActiveCountsByCategory(ctx context.Context) (map[db.Category]int, error) {
	counts := make(map[db.Category]int, len(db.Categories))
	for _, c := range db.Categories {
		counts[c] = 0
	}

	query := `SELECT category, COUNT(*) FROM reservations WHERE status = $1 GROUP BY category`
	rows, err := r.DB.QueryContext(ctx, query, db.StatusBooked)
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("counting active reservations: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var category db.Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, apperrors.StoreUnavailable(fmt.Errorf("scanning active count row: %w", err))
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("iterating active count rows: %w", err))
	}
	return counts, nil
}

// SumFees totals the fee of every reservation ever created, whatever its
// status. Cancelled and ended reservations still count toward revenue.
func (r *ReservationRepository) SumFees(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(fee), 0) FROM reservations`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, apperrors.StoreUnavailable(fmt.Errorf("summing reservation fees: %w", err))
	}
	return total, nil
}
