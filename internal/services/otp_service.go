package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

type RecoveryStep string

const (
	RecoveryEmail RecoveryStep = "email"
	RecoveryOTP   RecoveryStep = "otp"
	RecoveryReset RecoveryStep = "reset"
	RecoveryDone  RecoveryStep = "done"
)

type RecoveryAPI interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password string) error
}

type recoveryFlow struct {
	mu        sync.Mutex
	step      RecoveryStep
	email     string
	countdown *Countdown
	touched   time.Time
}

func (f *recoveryFlow) stopCountdown() {
	if f.countdown != nil {
		f.countdown.Stop()
		f.countdown = nil
	}
}

func (f *recoveryFlow) resendIn() int {
	if f.countdown == nil {
		return 0
	}
	return f.countdown.Remaining()
}

// RecoveryState is the password recovery screen state.
type RecoveryState struct {
	Step     RecoveryStep `json:"step"`
	Email    string       `json:"email,omitempty"`
	ResendIn int          `json:"resend_in"`
	Message  string       `json:"message,omitempty"`
}

func (f *recoveryFlow) state(message string) *RecoveryState {
	return &RecoveryState{Step: f.step, Email: f.email, ResendIn: f.resendIn(), Message: message}
}

// OTPService runs one password recovery flow per profile.
type OTPService struct {
	api           RecoveryAPI
	resendSeconds int
	tick          time.Duration

	mu    sync.Mutex
	flows map[string]*recoveryFlow
	now   func() time.Time
}

func NewOTPService(api RecoveryAPI, resendSeconds int, tick time.Duration) *OTPService {
	if tick <= 0 {
		tick = time.Second
	}
	return &OTPService{
		api:           api,
		resendSeconds: resendSeconds,
		tick:          tick,
		flows:         make(map[string]*recoveryFlow),
		now:           time.Now,
	}
}

func (s *OTPService) flow(profileID string) *recoveryFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[profileID]
	if !ok {
		f = &recoveryFlow{step: RecoveryEmail}
		s.flows[profileID] = f
	}
	f.touched = s.now()
	return f
}

func (s *OTPService) State(profileID string) *RecoveryState {
	f := s.flow(profileID)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state("")
}

// SendOTP requests a code for email and starts the resend countdown.
func (s *OTPService) SendOTP(ctx context.Context, profileID, email string) (*RecoveryState, error) {
	f := s.flow(profileID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != RecoveryEmail {
		return f.state(""), ErrRecoveryStep
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return f.state(""), ErrEmailRequired
	}
	if err := s.api.SendOTP(ctx, email); err != nil {
		log.Printf("OTP request failed for %s: %v", email, err)
		return f.state(""), ErrEmailNotRegistered
	}
	f.email = email
	f.step = RecoveryOTP
	f.stopCountdown()
	f.countdown = StartCountdown(s.resendSeconds, s.tick)
	return f.state("OTP sent to your email"), nil
}

func (s *OTPService) ResendOTP(ctx context.Context, profileID string) (*RecoveryState, error) {
	f := s.flow(profileID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != RecoveryOTP {
		return f.state(""), ErrRecoveryStep
	}
	if f.resendIn() > 0 {
		return f.state(""), ErrResendTooSoon
	}
	if err := s.api.SendOTP(ctx, f.email); err != nil {
		log.Printf("OTP resend failed for %s: %v", f.email, err)
		return f.state(""), ErrEmailNotRegistered
	}
	f.stopCountdown()
	f.countdown = StartCountdown(s.resendSeconds, s.tick)
	return f.state("OTP sent to your email"), nil
}

func (s *OTPService) VerifyOTP(ctx context.Context, profileID, otp string) (*RecoveryState, error) {
	f := s.flow(profileID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != RecoveryOTP {
		return f.state(""), ErrRecoveryStep
	}
	if err := s.api.VerifyOTP(ctx, f.email, strings.TrimSpace(otp)); err != nil {
		return f.state(""), ErrInvalidOTP
	}
	f.step = RecoveryReset
	f.stopCountdown()
	return f.state("OTP verified"), nil
}

func (s *OTPService) ResetPassword(ctx context.Context, profileID, password, confirm string) (*RecoveryState, error) {
	f := s.flow(profileID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != RecoveryReset {
		return f.state(""), ErrRecoveryStep
	}
	if password == "" || password != confirm {
		return f.state(""), ErrPasswordMismatch
	}
	if err := s.api.ResetPassword(ctx, f.email, password); err != nil {
		log.Printf("Password reset failed for %s: %v", f.email, err)
		return f.state(""), ErrResetFailed
	}
	f.step = RecoveryDone
	return f.state("Password reset successful!"), nil
}

// Abandon drops the flow and cancels its countdown.
func (s *OTPService) Abandon(profileID string) {
	s.mu.Lock()
	f, ok := s.flows[profileID]
	delete(s.flows, profileID)
	s.mu.Unlock()
	if !ok {
		return
	}
	f.mu.Lock()
	f.stopCountdown()
	f.mu.Unlock()
}

// SweepIdle abandons flows untouched since cutoff.
func (s *OTPService) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	var idle []*recoveryFlow
	for profileID, f := range s.flows {
		if f.touched.Before(cutoff) {
			idle = append(idle, f)
			delete(s.flows, profileID)
		}
	}
	s.mu.Unlock()

	for _, f := range idle {
		f.mu.Lock()
		f.stopCountdown()
		f.mu.Unlock()
	}
	return len(idle)
}

// Close stops every running countdown.
func (s *OTPService) Close() {
	s.mu.Lock()
	flows := s.flows
	s.flows = make(map[string]*recoveryFlow)
	s.mu.Unlock()
	for _, f := range flows {
		f.mu.Lock()
		f.stopCountdown()
		f.mu.Unlock()
	}
}
