package entities

import "smartparking/internal/db"

type LoginRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type VehicleRequest struct {
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number"`
	Color       string `json:"color"`
}

// UpdateProfileRequest is a partial update; nil fields stay unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

type UserResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number"`
	Color       string `json:"color"`
}

func NewUserResponse(u *db.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Phone:       u.Phone,
		Email:       u.Email,
		VehicleType: u.VehicleType,
		PlateNumber: u.PlateNumber,
		Color:       u.Color,
	}
}
