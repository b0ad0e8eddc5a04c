package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `id, name, phone, email, password_hash, vehicle_type, plate_number, color, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *db.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash,
		&u.VehicleType, &u.PlateNumber, &u.Color,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	query := `
		INSERT INTO users (name, phone, email, password_hash, vehicle_type, plate_number, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Phone, user.Email, user.PasswordHash,
		user.VehicleType, user.PlateNumber, user.Color,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return apperrors.StoreUnavailable(fmt.Errorf("inserting user: %w", err))
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*db.User, error) {
	var user db.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := scanUser(r.DB.QueryRowContext(ctx, query, id), &user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("querying user %d: %w", id, err))
	}
	return &user, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*db.User, error) {
	var user db.User
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	err := scanUser(r.DB.QueryRowContext(ctx, query, phone), &user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user with phone %s not found", phone)
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("querying user by phone: %w", err))
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *db.User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, email = $3, password_hash = $4, vehicle_type = $5,
		    plate_number = $6, color = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Phone, user.Email, user.PasswordHash,
		user.VehicleType, user.PlateNumber, user.Color, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("user %d not found", user.ID)
		}
		return apperrors.StoreUnavailable(fmt.Errorf("updating user %d: %w", user.ID, err))
	}
	return nil
}
