package handlers

import (
	"context"

	"golang-storefront/internal/services"
)

// AuthServiceInterface defines the contract for session handling
type AuthServiceInterface interface {
	Login(ctx context.Context, profileID string, req services.LoginRequest) (*services.Session, error)
	Register(ctx context.Context, req services.RegisterRequest) error
	Logout(ctx context.Context, profileID string) error
	Session(ctx context.Context, profileID string) (*services.Session, error)
}

// RecoveryServiceInterface defines the contract for password recovery
type RecoveryServiceInterface interface {
	State(profileID string) *services.RecoveryState
	SendOTP(ctx context.Context, profileID, email string) (*services.RecoveryState, error)
	ResendOTP(ctx context.Context, profileID string) (*services.RecoveryState, error)
	VerifyOTP(ctx context.Context, profileID, otp string) (*services.RecoveryState, error)
	ResetPassword(ctx context.Context, profileID, password, confirm string) (*services.RecoveryState, error)
	Abandon(profileID string)
}
