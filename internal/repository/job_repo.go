package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetBookedIDsPastWindow returns the IDs of booked reservations whose paid
// window (entry time plus booked hours) is already over.
func (r *JobRepository) GetBookedIDsPastWindow(ctx context.Context) ([]int, error) {
	query := `
		SELECT id FROM reservations
		WHERE status = $1
		  AND entry_time + (hours * interval '1 hour') < NOW()`
	rows, err := r.DB.QueryContext(ctx, query, db.StatusBooked)
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("querying expired reservations: %w", err))
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.StoreUnavailable(fmt.Errorf("scanning reservation id: %w", err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("iterating expired reservation rows: %w", err))
	}
	return ids, nil
}

// UpdateStatuses sets the status of the given reservations in one statement.
func (r *JobRepository) UpdateStatuses(ctx context.Context, ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return apperrors.StoreUnavailable(fmt.Errorf("updating reservation statuses: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}
