package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartparking/internal/db"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/service"
	"smartparking/internal/testutil"
)

func TestLogin_RegistersNewUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := testutil.NewMemUserStore()
	svc := service.NewAuthService(users)

	resp, err := svc.Login(context.Background(), entities.LoginRequest{
		Name:     "Sara",
		Phone:    "+9647700000001",
		Password: "abc123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Sara", resp.User.Name)

	stored, err := users.GetByPhone(context.Background(), "+9647700000001")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", stored.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("abc123")))
}

func TestLogin_ExistingUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := testutil.NewMemUserStore()
	svc := service.NewAuthService(users)
	ctx := context.Background()

	first, err := svc.Login(ctx, entities.LoginRequest{Name: "Sara", Phone: "+964770", Password: "abc123"})
	require.NoError(t, err)

	again, err := svc.Login(ctx, entities.LoginRequest{Name: "Sara", Phone: "+964770", Password: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID, "same phone logs into the same account")

	_, err = svc.Login(ctx, entities.LoginRequest{Name: "Sara", Phone: "+964770", Password: "wrong1"})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}

func TestLogin_Validation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := service.NewAuthService(testutil.NewMemUserStore())
	ctx := context.Background()

	tests := []struct {
		name string
		req  entities.LoginRequest
	}{
		{"missing name", entities.LoginRequest{Phone: "+964770", Password: "abc123"}},
		{"phone without plus", entities.LoginRequest{Name: "Sara", Phone: "0770", Password: "abc123"}},
		{"password without digits", entities.LoginRequest{Name: "Sara", Phone: "+964770", Password: "abcdef"}},
		{"password without letters", entities.LoginRequest{Name: "Sara", Phone: "+964770", Password: "123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
		})
	}
}

func TestUpdateVehicle(t *testing.T) {
	users := testutil.NewMemUserStore()
	svc := service.NewAuthService(users)
	ctx := context.Background()

	user := &db.User{Name: "Omar", Phone: "+964771"}
	require.NoError(t, users.Create(ctx, user))

	updated, err := svc.UpdateVehicle(ctx, user.ID, entities.VehicleRequest{
		VehicleType: "sedan",
		PlateNumber: "BGD-9876",
		Color:       "red",
	})
	require.NoError(t, err)
	assert.True(t, updated.HasVehicle())

	_, err = svc.UpdateVehicle(ctx, user.ID, entities.VehicleRequest{VehicleType: "sedan"})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err), "plate number is required")

	_, err = svc.UpdateVehicle(ctx, 999, entities.VehicleRequest{VehicleType: "sedan", PlateNumber: "X"})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	users := testutil.NewMemUserStore()
	svc := service.NewAuthService(users)
	ctx := context.Background()

	user := &db.User{Name: "Omar", Phone: "+964771", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))

	name := "Omar K."
	updated, err := svc.UpdateProfile(ctx, user.ID, entities.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Omar K.", updated.Name)
	assert.Equal(t, "+964771", updated.Phone, "absent fields stay unchanged")
	assert.Equal(t, "hash", updated.PasswordHash)

	badPhone := "0770"
	_, err = svc.UpdateProfile(ctx, user.ID, entities.UpdateProfileRequest{Phone: &badPhone})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}
