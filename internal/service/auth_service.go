package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"smartparking/internal/db"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
)

type AuthService interface {
	// Login authenticates by phone and password, creating the account on
	// first use.
	Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error)
	UpdateVehicle(ctx context.Context, userID int, req entities.VehicleRequest) (*db.User, error)
	UpdateProfile(ctx context.Context, userID int, req entities.UpdateProfileRequest) (*db.User, error)
}

type authService struct {
	users repository.UserStore
}

func NewAuthService(users repository.UserStore) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error) {
	if req.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if !strings.HasPrefix(req.Phone, "+") {
		return nil, apperrors.InvalidInput("phone number must be in international format starting with '+'")
	}
	if !hasLettersAndDigits(req.Password) {
		return nil, apperrors.InvalidInput("password must contain letters and numbers")
	}

	user, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		var se *apperrors.ServiceError
		if !(errors.As(err, &se) && se.Code == apperrors.CodeNotFound) {
			return nil, err
		}
		user, err = s.register(ctx, req)
		if err != nil {
			return nil, err
		}
	} else {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return nil, apperrors.InvalidInput("invalid credentials")
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &entities.LoginResponse{
		Token: token,
		User:  entities.NewUserResponse(user),
	}, nil
}

func (s *authService) register(ctx context.Context, req entities.LoginRequest) (*db.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &db.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateVehicle(ctx context.Context, userID int, req entities.VehicleRequest) (*db.User, error) {
	if req.VehicleType == "" || req.PlateNumber == "" {
		return nil, apperrors.InvalidInput("vehicle type and plate number are required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.VehicleType = req.VehicleType
	user.PlateNumber = req.PlateNumber
	user.Color = req.Color
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int, req entities.UpdateProfileRequest) (*db.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		if !strings.HasPrefix(*req.Phone, "+") {
			return nil, apperrors.InvalidInput("phone number must be in international format starting with '+'")
		}
		user.Phone = *req.Phone
	}
	if req.NewPassword != nil {
		if !hasLettersAndDigits(*req.NewPassword) {
			return nil, apperrors.InvalidInput("password must contain letters and numbers")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken(user *db.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func hasLettersAndDigits(password string) bool {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
